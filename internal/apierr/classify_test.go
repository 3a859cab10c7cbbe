package apierr_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/alnah/go-dictation/internal/apierr"
)

// ---------------------------------------------------------------------------
// TestClassify - go-openai errors mapped to sentinels
// ---------------------------------------------------------------------------

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"429 rate limit", &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests, Message: "slow down"}, apierr.ErrRateLimit},
		{"429 quota", &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests, Message: "You exceeded your current quota"}, apierr.ErrQuotaExceeded},
		{"402 payment", &openai.APIError{HTTPStatusCode: http.StatusPaymentRequired, Message: "pay"}, apierr.ErrQuotaExceeded},
		{"401 auth", &openai.APIError{HTTPStatusCode: http.StatusUnauthorized, Message: "bad key"}, apierr.ErrAuthFailed},
		{"408 timeout", &openai.APIError{HTTPStatusCode: http.StatusRequestTimeout}, apierr.ErrTimeout},
		{"504 gateway timeout", &openai.APIError{HTTPStatusCode: http.StatusGatewayTimeout}, apierr.ErrTimeout},
		{"500 server", &openai.APIError{HTTPStatusCode: http.StatusInternalServerError}, apierr.ErrServer},
		{"503 server", &openai.APIError{HTTPStatusCode: http.StatusServiceUnavailable}, apierr.ErrServer},
		{"400 bad request", &openai.APIError{HTTPStatusCode: http.StatusBadRequest, Message: "nope"}, apierr.ErrBadRequest},
		{"404 not found", &openai.APIError{HTTPStatusCode: http.StatusNotFound}, apierr.ErrBadRequest},
		{"request error 502", &openai.RequestError{HTTPStatusCode: http.StatusBadGateway, Err: errors.New("gateway")}, apierr.ErrServer},
		{"wrapped api error", fmt.Errorf("call: %w", &openai.APIError{HTTPStatusCode: http.StatusUnauthorized}), apierr.ErrAuthFailed},
		{"deadline exceeded", context.DeadlineExceeded, apierr.ErrTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := apierr.Classify(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("Classify(%v) = %v, want wrapping %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifyPassThrough(t *testing.T) {
	t.Parallel()

	if got := apierr.Classify(nil); got != nil {
		t.Errorf("Classify(nil) = %v, want nil", got)
	}
	plain := errors.New("connection reset")
	if got := apierr.Classify(plain); got != plain {
		t.Errorf("Classify(plain) = %v, want unchanged", got)
	}
	teapot := &openai.APIError{HTTPStatusCode: http.StatusTeapot}
	if got := apierr.Classify(teapot); got != error(teapot) {
		t.Errorf("Classify(418) = %v, want unchanged", got)
	}
}

// ---------------------------------------------------------------------------
// TestIsRetryable - only transient sentinels retry
// ---------------------------------------------------------------------------

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want bool
	}{
		{fmt.Errorf("x: %w", apierr.ErrRateLimit), true},
		{fmt.Errorf("x: %w", apierr.ErrTimeout), true},
		{fmt.Errorf("x: %w", apierr.ErrServer), true},
		{apierr.ErrQuotaExceeded, false},
		{apierr.ErrAuthFailed, false},
		{apierr.ErrBadRequest, false},
		{context.Canceled, false},
		{errors.New("other"), false},
	}

	for _, tt := range tests {
		if got := apierr.IsRetryable(tt.err); got != tt.want {
			t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestSentinelsDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		apierr.ErrRateLimit, apierr.ErrQuotaExceeded, apierr.ErrTimeout,
		apierr.ErrAuthFailed, apierr.ErrBadRequest, apierr.ErrServer,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("errors.Is(%v, %v) = true, want false", a, b)
			}
		}
	}
}
