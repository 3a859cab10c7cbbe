package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/go-dictation/internal/format"
)

// checkOptions holds the parsed arguments of the check command.
type checkOptions struct {
	Exercise string
	Fragment string
	Attempt  string
	Format   string
}

// CheckCmd creates the check command, which grades a typed attempt.
func CheckCmd(env *Env) *cobra.Command {
	var outFormat string

	cmd := &cobra.Command{
		Use:   "check <exercise> <fragment-number> [attempt...]",
		Short: "Grade a typed attempt against one fragment",
		Long: `Grade a typed attempt against one fragment of a saved exercise.

Words are aligned with the expected text and marked correct, misspelled,
wrong, missing or extra. Letter case and punctuation are ignored.
The attempt is read from stdin when not given as arguments.`,
		Example: `  dictation check lesson-1 3 "the quick brown fox"
  echo "the quick brown fox" | dictation check lesson-1 3 --format json`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), env, checkOptions{
				Exercise: args[0],
				Fragment: args[1],
				Attempt:  strings.Join(args[2:], " "),
				Format:   outFormat,
			})
		},
	}

	cmd.Flags().StringVarP(&outFormat, "format", "f", FormatText, "Output format: text, json")
	return cmd
}

// runCheck loads the expected fragment and compares the attempt with it.
func runCheck(ctx context.Context, env *Env, opts checkOptions) error {
	outFormat, err := parseFormat(opts.Format)
	if err != nil {
		return err
	}
	num, err := strconv.Atoi(opts.Fragment)
	if err != nil {
		return fmt.Errorf("fragment number %q: %w", opts.Fragment, ErrInvalidArgs)
	}

	attempt := opts.Attempt
	if attempt == "" {
		data, err := io.ReadAll(env.Stdin)
		if err != nil {
			return fmt.Errorf("cannot read attempt: %w", err)
		}
		attempt = string(data)
	}

	return withStore(ctx, env, func(st Store) error {
		ex, err := st.Get(ctx, opts.Exercise)
		if err != nil {
			return err
		}
		if num < 1 || num > len(ex.Records) {
			return fmt.Errorf("%d (have %d): %w", num, len(ex.Records), ErrInvalidIndex)
		}

		res := env.Comparer.Compare(ex.Records[num-1].Text, attempt)
		env.Logger.Debug("compared attempt", "exercise", ex.Name, "fragment", num, "accuracy", res.Accuracy)

		if outFormat == FormatJSON {
			return writeJSON(env.Stdout, res)
		}
		_, err = fmt.Fprint(env.Stdout, format.Comparison(res))
		return err
	})
}
