package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alnah/go-dictation/internal/apierr"
	"github.com/alnah/go-dictation/internal/cli"
	"github.com/alnah/go-dictation/internal/config"
	"github.com/alnah/go-dictation/internal/fragment"
	"github.com/alnah/go-dictation/internal/name"
	"github.com/alnah/go-dictation/internal/punctuate"
	"github.com/alnah/go-dictation/internal/segment"
	"github.com/alnah/go-dictation/internal/store"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitGeneral     = 1
	ExitUsage       = 2
	ExitSetup       = 3
	ExitValidation  = 4
	ExitPunctuation = 5
	ExitStore       = 6
	ExitInterrupt   = 130
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	// Context with signal cancellation.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCmd(cli.DefaultEnv())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// newRootCmd builds the command tree around env.
func newRootCmd(env *cli.Env) *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:     "dictation",
		Short:   "Segment transcripts into dictation fragments and edit them",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		// Silence Cobra's default error/usage printing; we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := cli.NewLogger(env.Stderr, logLevel)
			if err != nil {
				return err
			}
			env.Logger = logger
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Diagnostic log level: debug, info, warn, error (default: off)")

	rootCmd.AddCommand(cli.SegmentCmd(env))
	rootCmd.AddCommand(cli.EditCmd(env))
	rootCmd.AddCommand(cli.ExerciseCmd(env))
	rootCmd.AddCommand(cli.CheckCmd(env))
	rootCmd.AddCommand(cli.NameCmd(env))
	rootCmd.AddCommand(cli.ConfigCmd(env))

	return rootCmd
}

// exitCode maps errors to process exit codes.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	// Check for context cancellation (interrupt).
	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	// Usage errors (ExitUsage = 2): Cobra flag/arg parsing errors.
	// Cobra doesn't expose typed errors, so we check for known error message patterns.
	if isCobraUsageError(err) || errors.Is(err, cli.ErrInvalidArgs) {
		return ExitUsage
	}

	// Setup errors (ExitSetup = 3).
	if errors.Is(err, cli.ErrAPIKeyMissing) || errors.Is(err, cli.ErrUnknownConfigKey) ||
		errors.Is(err, fragment.ErrInvalidPolicy) || errors.Is(err, config.ErrInvalidKey) ||
		errors.Is(err, config.ErrInvalidSyntax) || errors.Is(err, config.ErrNotDirectory) ||
		errors.Is(err, config.ErrNotWritable) {
		return ExitSetup
	}

	// Validation errors (ExitValidation = 4).
	if errors.Is(err, segment.ErrInputBounds) || errors.Is(err, fragment.ErrRoundTrip) ||
		errors.Is(err, name.ErrInvalid) || errors.Is(err, cli.ErrFileNotFound) ||
		errors.Is(err, cli.ErrOutputExists) || errors.Is(err, cli.ErrUnsupportedFormat) ||
		errors.Is(err, cli.ErrInvalidIndex) {
		return ExitValidation
	}

	// Punctuation errors (ExitPunctuation = 5).
	if errors.Is(err, apierr.ErrRateLimit) || errors.Is(err, apierr.ErrQuotaExceeded) ||
		errors.Is(err, apierr.ErrTimeout) || errors.Is(err, apierr.ErrAuthFailed) ||
		errors.Is(err, apierr.ErrBadRequest) || errors.Is(err, apierr.ErrServer) ||
		errors.Is(err, punctuate.ErrContentChanged) ||
		errors.Is(err, punctuate.ErrEmptyResponse) {
		return ExitPunctuation
	}

	// Store errors (ExitStore = 6).
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrOpen) {
		return ExitStore
	}

	return ExitGeneral
}

// cobraUsageErrorPatterns contains error message substrings that indicate Cobra usage errors.
// Cobra doesn't expose typed errors, so string matching is the only reliable approach.
var cobraUsageErrorPatterns = []string{
	"required flag",             // Missing required flag
	"unknown flag",              // Flag doesn't exist
	"unknown shorthand",         // Short flag doesn't exist
	"flag needs an argument",    // Flag provided without value
	"invalid argument",          // Invalid flag value type
	"if any flags in the group", // Mutually exclusive flag violation
	"accepts ",                  // Wrong number of arguments (e.g., "accepts 1 arg(s)")
	"requires at least",         // Too few arguments
	"requires at most",          // Too many arguments
	"unknown command",           // Unknown subcommand
}

// isCobraUsageError checks if an error is a Cobra usage/parsing error.
func isCobraUsageError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
