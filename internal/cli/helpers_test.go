package cli

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-dictation/internal/compare"
	"github.com/alnah/go-dictation/internal/config"
	"github.com/alnah/go-dictation/internal/fragment"
	"github.com/alnah/go-dictation/internal/store"
)

// ---------------------------------------------------------------------------
// syncBuffer - thread-safe bytes.Buffer for concurrent test output
// ---------------------------------------------------------------------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Compile-time check that syncBuffer implements io.Writer.
var _ io.Writer = (*syncBuffer)(nil)

// ---------------------------------------------------------------------------
// testMocks - convenience struct for grouping all mocks
// ---------------------------------------------------------------------------

type testMocks struct {
	stdout       *syncBuffer
	stderr       *syncBuffer
	configLoader *mockConfigLoader
	policyLoader *mockPolicyLoader
	punctuator   *mockPunctuatorFactory
	storeOpener  *mockStoreOpener
	store        *memStore
}

// testNow is the fixed clock used by testEnv.
var testNow = time.Date(2026, 1, 26, 14, 30, 52, 0, time.UTC)

// testEnv creates an Env with every dependency mocked. The config points
// db-path into a temp dir, and stdin reads from stdin.
func testEnv(t *testing.T, stdin string) (*Env, *testMocks) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "data", "exercises.db")
	mem := newMemStore()
	m := &testMocks{
		stdout: &syncBuffer{},
		stderr: &syncBuffer{},
		configLoader: &mockConfigLoader{
			LoadFunc: func() (config.Config, error) {
				return config.Config{DBPath: dbPath}, nil
			},
		},
		policyLoader: &mockPolicyLoader{},
		punctuator:   &mockPunctuatorFactory{},
		storeOpener:  &mockStoreOpener{store: mem},
		store:        mem,
	}

	env := &Env{
		Stdin:             strings.NewReader(stdin),
		Stdout:            m.stdout,
		Stderr:            m.stderr,
		Getenv:            staticEnv(map[string]string{EnvOpenAIAPIKey: "test-openai-key"}),
		Now:               fixedTime(testNow),
		Logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		ConfigLoader:      m.configLoader,
		PolicyLoader:      m.policyLoader,
		PunctuatorFactory: m.punctuator,
		StoreOpener:       m.storeOpener,
		Comparer:          compare.WordComparer{},
	}
	return env, m
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// fixedTime returns a function that always returns the given time.
func fixedTime(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// staticEnv returns a getenv function that returns values from the given map.
func staticEnv(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

// writeTestFile creates a file with content in a temp dir and returns its path.
func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// testExercise builds an exercise from fragment texts.
func testExercise(name string, texts ...string) store.Exercise {
	return store.Exercise{
		Name:      name,
		Title:     "Title " + name,
		CreatedAt: testNow.Add(-2 * time.Hour),
		Records:   fragment.Records(texts, fragment.DefaultPolicy()),
	}
}

// words returns n distinct lowercase words joined by spaces.
func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "w" + string(rune('a'+i%26)) + strings.Repeat("x", i/26)
	}
	return strings.Join(parts, " ")
}

// lesson is a punctuated text comfortably above the minimum word count.
const lesson = "The morning was cold and bright. We walked along the river, " +
	"watching the boats drift slowly past the old stone bridge. " +
	"Nobody spoke for a long time."

// abbreviated contains "U.S.", which sentence detection splits in two, so the
// joined fragments read "U. S." and differ from the source.
const abbreviated = "The U.S. Army trained soldiers here for many long years. " +
	"They marched along the river every morning before the sun came up over the hills."
