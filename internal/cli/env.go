package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/alnah/go-dictation/internal/compare"
	"github.com/alnah/go-dictation/internal/config"
	"github.com/alnah/go-dictation/internal/fragment"
	"github.com/alnah/go-dictation/internal/punctuate"
	"github.com/alnah/go-dictation/internal/store"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// All fields have sensible defaults via DefaultEnv(). Tests can override
// specific fields using the With* options or by creating a custom Env.
type Env struct {
	// I/O and environment
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Now    func() time.Time
	Logger *slog.Logger

	// Factories for domain objects
	ConfigLoader      ConfigLoader
	PolicyLoader      PolicyLoader
	PunctuatorFactory PunctuatorFactory
	StoreOpener       StoreOpener
	Comparer          compare.Comparer
}

// ConfigLoader loads user configuration.
type ConfigLoader interface {
	Load() (config.Config, error)
}

// PolicyLoader loads a segmentation policy. An empty path means defaults.
type PolicyLoader interface {
	LoadPolicy(path string) (fragment.Policy, error)
}

// PunctuatorFactory creates punctuators for raw transcripts.
type PunctuatorFactory interface {
	NewPunctuator(apiKey string, logger *slog.Logger) punctuate.Punctuator
}

// Store persists exercises.
type Store interface {
	Save(ctx context.Context, ex store.Exercise) error
	Get(ctx context.Context, name string) (store.Exercise, error)
	List(ctx context.Context) ([]store.Summary, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

// StoreOpener opens the exercise store at path.
type StoreOpener interface {
	Open(ctx context.Context, path string) (Store, error)
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdin sets the stdin reader.
func WithStdin(r io.Reader) EnvOption {
	return func(e *Env) { e.Stdin = r }
}

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) { e.Stdout = w }
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) { e.Stderr = w }
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) { e.Getenv = fn }
}

// WithNow sets the time provider.
func WithNow(fn func() time.Time) EnvOption {
	return func(e *Env) { e.Now = fn }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) EnvOption {
	return func(e *Env) { e.Logger = l }
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) { e.ConfigLoader = l }
}

// WithPolicyLoader sets the policy loader.
func WithPolicyLoader(l PolicyLoader) EnvOption {
	return func(e *Env) { e.PolicyLoader = l }
}

// WithPunctuatorFactory sets the punctuator factory.
func WithPunctuatorFactory(f PunctuatorFactory) EnvOption {
	return func(e *Env) { e.PunctuatorFactory = f }
}

// WithStoreOpener sets the store opener.
func WithStoreOpener(o StoreOpener) EnvOption {
	return func(e *Env) { e.StoreOpener = o }
}

// WithComparer sets the attempt comparer.
func WithComparer(c compare.Comparer) EnvOption {
	return func(e *Env) { e.Comparer = c }
}

// DefaultEnv returns an Env with production defaults.
// The logger discards everything until replaced.
func DefaultEnv() *Env {
	return &Env{
		Stdin:             os.Stdin,
		Stdout:            os.Stdout,
		Stderr:            os.Stderr,
		Getenv:            os.Getenv,
		Now:               time.Now,
		Logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		ConfigLoader:      &defaultConfigLoader{},
		PolicyLoader:      &defaultPolicyLoader{},
		PunctuatorFactory: &defaultPunctuatorFactory{},
		StoreOpener:       &defaultStoreOpener{},
		Comparer:          compare.WordComparer{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

type defaultConfigLoader struct{}

func (defaultConfigLoader) Load() (config.Config, error) {
	return config.Load()
}

type defaultPolicyLoader struct{}

func (defaultPolicyLoader) LoadPolicy(path string) (fragment.Policy, error) {
	return config.LoadPolicy(path)
}

type defaultPunctuatorFactory struct{}

func (defaultPunctuatorFactory) NewPunctuator(apiKey string, logger *slog.Logger) punctuate.Punctuator {
	client := openai.NewClient(apiKey)
	return punctuate.NewOpenAIPunctuator(client, punctuate.WithLogger(logger))
}

type defaultStoreOpener struct{}

func (defaultStoreOpener) Open(ctx context.Context, path string) (Store, error) {
	return store.Open(ctx, path)
}

// Compile-time interface verification.
var (
	_ ConfigLoader      = (*defaultConfigLoader)(nil)
	_ PolicyLoader      = (*defaultPolicyLoader)(nil)
	_ PunctuatorFactory = (*defaultPunctuatorFactory)(nil)
	_ StoreOpener       = (*defaultStoreOpener)(nil)
	_ Store             = (*store.DB)(nil)
)
