// Package punctuate restores sentence punctuation in raw speech-recognition
// output so that it can be segmented into dictation fragments.
package punctuate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/text/unicode/norm"

	"github.com/alnah/go-dictation/internal/apierr"
)

// Default model and retry configuration.
const (
	DefaultModel = openai.GPT4oMini

	defaultMaxRetries = 3
	defaultBaseDelay  = 1 * time.Second
	defaultMaxDelay   = 30 * time.Second
)

const systemPrompt = `You restore punctuation in speech transcripts used for dictation exercises.
Add sentence punctuation (. , ; : ? !) and capitalize sentence starts.
Never add, remove, reorder or replace words. Do not fix grammar or spelling.
Reply with the punctuated transcript only.`

// Punctuator restores punctuation in text without changing its words.
type Punctuator interface {
	Punctuate(ctx context.Context, text string) (string, error)
}

// chatCompleter is the subset of *openai.Client used here.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Compile-time interface compliance checks.
var (
	_ Punctuator    = (*OpenAIPunctuator)(nil)
	_ chatCompleter = (*openai.Client)(nil)
)

// OpenAIPunctuator punctuates text with an OpenAI chat model.
// Transient API failures are retried with exponential backoff.
type OpenAIPunctuator struct {
	client     chatCompleter
	model      string
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
	logger     *slog.Logger
}

// Option configures an OpenAIPunctuator.
type Option func(*OpenAIPunctuator)

// WithModel sets the chat model.
func WithModel(model string) Option {
	return func(p *OpenAIPunctuator) {
		if model != "" {
			p.model = model
		}
	}
}

// WithMaxRetries sets the maximum number of retry attempts.
func WithMaxRetries(n int) Option {
	return func(p *OpenAIPunctuator) {
		if n >= 0 {
			p.maxRetries = n
		}
	}
}

// WithRetryDelays sets the base and max delays for exponential backoff.
func WithRetryDelays(base, maxDelay time.Duration) Option {
	return func(p *OpenAIPunctuator) {
		if base > 0 {
			p.baseDelay = base
		}
		if maxDelay > 0 {
			p.maxDelay = maxDelay
		}
	}
}

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *OpenAIPunctuator) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewOpenAIPunctuator creates a punctuator backed by client.
func NewOpenAIPunctuator(client *openai.Client, opts ...Option) *OpenAIPunctuator {
	return newPunctuator(client, opts...)
}

func newPunctuator(client chatCompleter, opts ...Option) *OpenAIPunctuator {
	p := &OpenAIPunctuator{
		client:     client,
		model:      DefaultModel,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
		maxDelay:   defaultMaxDelay,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Punctuate returns text with punctuation restored. Blank input is returned
// unchanged without calling the API. The result is rejected with
// ErrContentChanged if its word sequence differs from the input's.
func (p *OpenAIPunctuator) Punctuate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	req := openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	}

	cfg := apierr.RetryConfig{
		MaxRetries: p.maxRetries,
		BaseDelay:  p.baseDelay,
		MaxDelay:   p.maxDelay,
		OnRetry: func(n int, err error) {
			p.logger.Warn("retrying punctuation request", "retry", n, "error", err)
		},
	}

	out, err := apierr.RetryWithBackoff(ctx, cfg, func() (string, error) {
		resp, err := p.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return "", apierr.Classify(err)
		}
		if len(resp.Choices) == 0 {
			return "", ErrEmptyResponse
		}
		content := strings.TrimSpace(resp.Choices[0].Message.Content)
		if content == "" {
			return "", ErrEmptyResponse
		}
		return content, nil
	}, apierr.IsRetryable)
	if err != nil {
		return "", fmt.Errorf("punctuate: %w", err)
	}

	if !SameWords(text, out) {
		p.logger.Debug("punctuation rejected", "input_words", len(wordKeys(text)), "output_words", len(wordKeys(out)))
		return "", ErrContentChanged
	}
	return out, nil
}

// SameWords reports whether a and b contain the same word sequence once
// punctuation and letter case are ignored.
func SameWords(a, b string) bool {
	ka, kb := wordKeys(a), wordKeys(b)
	if len(ka) != len(kb) {
		return false
	}
	for i := range ka {
		if ka[i] != kb[i] {
			return false
		}
	}
	return true
}

func wordKeys(s string) []string {
	s = strings.ToLower(norm.NFC.String(s))
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r)
	})
}
