package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/go-dictation/internal/name"
)

// NameCmd creates the name command for exercise identifiers.
func NameCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "name",
		Short: "Validate or suggest exercise names",
		Long: `Validate or suggest exercise names.

Names are 3 to 50 characters of letters, digits, '_', '-', '(' and ')'.`,
		Example: `  dictation name check lesson-1
  dictation name suggest "Le Petit Prince, chapitre 1"`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check <name>",
		Short: "Check that a name is valid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNameCheck(env, args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "suggest <title...>",
		Short: "Suggest a name from a title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNameSuggest(env, strings.Join(args, " "))
		},
	})

	return cmd
}

func runNameCheck(env *Env, id string) error {
	if err := name.Validate(id); err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "%s is valid\n", id)
	return nil
}

func runNameSuggest(env *Env, title string) error {
	s := name.Suggest(title)
	if err := name.Validate(s); err != nil {
		fmt.Fprintf(env.Stderr, "Warning: suggestion is not a valid name: %v\n", err)
	}
	fmt.Fprintln(env.Stdout, s)
	return nil
}
