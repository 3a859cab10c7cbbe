package cli

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alnah/go-dictation/internal/compare"
	"github.com/alnah/go-dictation/internal/store"
)

func checkEnv(t *testing.T, stdin string) (*Env, *testMocks) {
	t.Helper()
	env, m := testEnv(t, stdin)
	ex := testExercise("lesson-1", "Hello there.", "The quick brown fox.")
	if err := m.store.Save(context.Background(), ex); err != nil {
		t.Fatal(err)
	}
	return env, m
}

func TestRunCheck_Text(t *testing.T) {
	t.Parallel()
	env, m := checkEnv(t, "")

	err := RunCheck(context.Background(), env, CheckOptions{Exercise: "lesson-1", Fragment: "2", Attempt: "the quik brown"})
	if err != nil {
		t.Fatalf("RunCheck() error = %v", err)
	}
	want := "the quik(quick) brown _fox._\naccuracy: 50%\n"
	if got := m.stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestRunCheck_AttemptFromStdin(t *testing.T) {
	t.Parallel()
	env, m := checkEnv(t, "hello there\n")

	err := RunCheck(context.Background(), env, CheckOptions{Exercise: "lesson-1", Fragment: "1", Format: "json"})
	if err != nil {
		t.Fatalf("RunCheck() error = %v", err)
	}
	var got compare.Result
	if err := json.Unmarshal([]byte(m.stdout.String()), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Accuracy != 1 || len(got.Words) != 2 {
		t.Errorf("result = %+v, want perfect match", got)
	}
}

func TestRunCheck_UsesComparer(t *testing.T) {
	t.Parallel()
	env, m := checkEnv(t, "")
	var gotExpected, gotActual string
	env.Comparer = comparerFunc(func(expected, actual string) compare.Result {
		gotExpected, gotActual = expected, actual
		return compare.Result{Accuracy: 0.25}
	})

	err := RunCheck(context.Background(), env, CheckOptions{Exercise: "lesson-1", Fragment: "2", Attempt: "anything"})
	if err != nil {
		t.Fatalf("RunCheck() error = %v", err)
	}
	if gotExpected != "The quick brown fox." || gotActual != "anything" {
		t.Errorf("Compare(%q, %q)", gotExpected, gotActual)
	}
	if got := m.stdout.String(); got != "\naccuracy: 25%\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestRunCheck_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    CheckOptions
		wantErr error
	}{
		{"bad format", CheckOptions{Exercise: "lesson-1", Fragment: "1", Attempt: "x", Format: "xml"}, ErrUnsupportedFormat},
		{"not a number", CheckOptions{Exercise: "lesson-1", Fragment: "one", Attempt: "x"}, ErrInvalidArgs},
		{"zero", CheckOptions{Exercise: "lesson-1", Fragment: "0", Attempt: "x"}, ErrInvalidIndex},
		{"past end", CheckOptions{Exercise: "lesson-1", Fragment: "3", Attempt: "x"}, ErrInvalidIndex},
		{"unknown exercise", CheckOptions{Exercise: "missing", Fragment: "1", Attempt: "x"}, store.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env, _ := checkEnv(t, "")
			if err := RunCheck(context.Background(), env, tt.opts); !errors.Is(err, tt.wantErr) {
				t.Errorf("RunCheck() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

type comparerFunc func(expected, actual string) compare.Result

func (f comparerFunc) Compare(expected, actual string) compare.Result { return f(expected, actual) }
