package cli

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/alnah/go-dictation/internal/config"
	"github.com/alnah/go-dictation/internal/fragment"
	"github.com/alnah/go-dictation/internal/punctuate"
	"github.com/alnah/go-dictation/internal/store"
)

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)

	mu        sync.Mutex
	loadCalls int
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Config{}, nil
}

func (m *mockConfigLoader) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// ---------------------------------------------------------------------------
// Mock PolicyLoader
// ---------------------------------------------------------------------------

type mockPolicyLoader struct {
	LoadPolicyFunc func(path string) (fragment.Policy, error)

	mu    sync.Mutex
	paths []string
}

func (m *mockPolicyLoader) LoadPolicy(path string) (fragment.Policy, error) {
	m.mu.Lock()
	m.paths = append(m.paths, path)
	m.mu.Unlock()

	if m.LoadPolicyFunc != nil {
		return m.LoadPolicyFunc(path)
	}
	return fragment.DefaultPolicy(), nil
}

func (m *mockPolicyLoader) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.paths)
}

// ---------------------------------------------------------------------------
// Mock PunctuatorFactory + Punctuator
// ---------------------------------------------------------------------------

type mockPunctuator struct {
	PunctuateFunc func(ctx context.Context, text string) (string, error)

	mu    sync.Mutex
	calls int
}

func (m *mockPunctuator) Punctuate(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.PunctuateFunc != nil {
		return m.PunctuateFunc(ctx, text)
	}
	return text, nil
}

func (m *mockPunctuator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockPunctuatorFactory struct {
	punctuator *mockPunctuator

	mu      sync.Mutex
	apiKeys []string
}

func (m *mockPunctuatorFactory) NewPunctuator(apiKey string, _ *slog.Logger) punctuate.Punctuator {
	m.mu.Lock()
	m.apiKeys = append(m.apiKeys, apiKey)
	m.mu.Unlock()

	if m.punctuator == nil {
		m.punctuator = &mockPunctuator{}
	}
	return m.punctuator
}

func (m *mockPunctuatorFactory) APIKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.apiKeys)
}

// ---------------------------------------------------------------------------
// In-memory Store + StoreOpener
// ---------------------------------------------------------------------------

type memStore struct {
	SaveErr error

	mu        sync.Mutex
	exercises map[string]store.Exercise
	closed    int
}

func newMemStore(exercises ...store.Exercise) *memStore {
	m := &memStore{exercises: make(map[string]store.Exercise)}
	for _, ex := range exercises {
		m.exercises[ex.Name] = ex
	}
	return m
}

func (m *memStore) Save(_ context.Context, ex store.Exercise) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if prev, ok := m.exercises[ex.Name]; ok {
		ex.CreatedAt = prev.CreatedAt
	}
	ex.Records = slices.Clone(ex.Records)
	m.exercises[ex.Name] = ex
	return nil
}

func (m *memStore) Get(_ context.Context, name string) (store.Exercise, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ex, ok := m.exercises[name]
	if !ok {
		return store.Exercise{}, fmt.Errorf("%q: %w", name, store.ErrNotFound)
	}
	return ex, nil
}

func (m *memStore) List(context.Context) ([]store.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]store.Summary, 0, len(m.exercises))
	for _, ex := range m.exercises {
		out = append(out, store.Summary{Name: ex.Name, Title: ex.Title, CreatedAt: ex.CreatedAt, Fragments: len(ex.Records)})
	}
	slices.SortFunc(out, func(a, b store.Summary) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (m *memStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.exercises[name]; !ok {
		return fmt.Errorf("%q: %w", name, store.ErrNotFound)
	}
	delete(m.exercises, name)
	return nil
}

func (m *memStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed++
	return nil
}

func (m *memStore) Exercise(name string) (store.Exercise, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ex, ok := m.exercises[name]
	return ex, ok
}

func (m *memStore) Closed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

type mockStoreOpener struct {
	OpenFunc func(ctx context.Context, path string) (Store, error)
	store    *memStore

	mu    sync.Mutex
	paths []string
}

func (m *mockStoreOpener) Open(ctx context.Context, path string) (Store, error) {
	m.mu.Lock()
	m.paths = append(m.paths, path)
	m.mu.Unlock()

	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, path)
	}
	return m.store, nil
}

func (m *mockStoreOpener) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.paths)
}

// Compile-time checks.
var (
	_ ConfigLoader         = (*mockConfigLoader)(nil)
	_ PolicyLoader         = (*mockPolicyLoader)(nil)
	_ PunctuatorFactory    = (*mockPunctuatorFactory)(nil)
	_ punctuate.Punctuator = (*mockPunctuator)(nil)
	_ Store                = (*memStore)(nil)
	_ StoreOpener          = (*mockStoreOpener)(nil)
)
