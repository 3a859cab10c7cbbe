package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alnah/go-dictation/internal/format"
	"github.com/alnah/go-dictation/internal/fragment"
	"github.com/alnah/go-dictation/internal/store"
)

// ExerciseCmd creates the exercise command with subcommands.
func ExerciseCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Manage saved exercises",
		Long: `Manage exercises saved with "segment --save" or the editor.

Exercises live in the SQLite database set by db-path
(default: ~/.config/go-dictation/exercises.db).`,
		Example: `  dictation exercise list
  dictation exercise show lesson-1
  dictation exercise delete lesson-1`,
	}

	cmd.AddCommand(exerciseListCmd(env))
	cmd.AddCommand(exerciseShowCmd(env))
	cmd.AddCommand(exerciseDeleteCmd(env))

	return cmd
}

func exerciseListCmd(env *Env) *cobra.Command {
	var outFormat string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved exercises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExerciseList(cmd.Context(), env, outFormat)
		},
	}
	cmd.Flags().StringVarP(&outFormat, "format", "f", FormatText, "Output format: text, json")
	return cmd
}

func exerciseShowCmd(env *Env) *cobra.Command {
	var outFormat string
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show the fragments of an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExerciseShow(cmd.Context(), env, args[0], outFormat)
		},
	}
	cmd.Flags().StringVarP(&outFormat, "format", "f", FormatText, "Output format: text, json")
	return cmd
}

func exerciseDeleteCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExerciseDelete(cmd.Context(), env, args[0])
		},
	}
}

// runExerciseList prints one line per exercise, newest first.
func runExerciseList(ctx context.Context, env *Env, outFormat string) error {
	outFormat, err := parseFormat(outFormat)
	if err != nil {
		return err
	}

	return withStore(ctx, env, func(st Store) error {
		list, err := st.List(ctx)
		if err != nil {
			return err
		}
		if outFormat == FormatJSON {
			if list == nil {
				list = []store.Summary{}
			}
			return writeJSON(env.Stdout, list)
		}
		if len(list) == 0 {
			fmt.Fprintln(env.Stdout, "No exercises saved.")
			return nil
		}

		tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tTITLE\tFRAGMENTS\tCREATED")
		now := env.Now()
		for _, s := range list {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", s.Name, s.Title, s.Fragments, format.Age(s.CreatedAt, now))
		}
		return tw.Flush()
	})
}

// runExerciseShow prints an exercise's fragments and validation summary.
func runExerciseShow(ctx context.Context, env *Env, exerciseName, outFormat string) error {
	outFormat, err := parseFormat(outFormat)
	if err != nil {
		return err
	}

	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		return err
	}
	policy, err := loadPolicy(env, cfg, "")
	if err != nil {
		return err
	}

	return withStore(ctx, env, func(st Store) error {
		ex, err := st.Get(ctx, exerciseName)
		if err != nil {
			return err
		}
		if outFormat == FormatJSON {
			return writeJSON(env.Stdout, ex)
		}

		texts := fragment.Texts(ex.Records)
		fmt.Fprintf(env.Stdout, "%s (%s)\n", ex.Title, ex.Name)
		fmt.Fprint(env.Stdout, format.Fragments(texts, policy))
		fmt.Fprintln(env.Stdout, format.Summary(fragment.Validate(texts, policy)))
		return nil
	})
}

// runExerciseDelete removes an exercise.
func runExerciseDelete(ctx context.Context, env *Env, exerciseName string) error {
	return withStore(ctx, env, func(st Store) error {
		if err := st.Delete(ctx, exerciseName); err != nil {
			return err
		}
		fmt.Fprintf(env.Stderr, "Deleted exercise %q\n", exerciseName)
		return nil
	})
}
