package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/go-dictation/internal/editor"
	"github.com/alnah/go-dictation/internal/format"
	"github.com/alnah/go-dictation/internal/fragment"
	"github.com/alnah/go-dictation/internal/name"
	"github.com/alnah/go-dictation/internal/segment"
	"github.com/alnah/go-dictation/internal/store"
)

const editHelp = `Commands (fragment numbers start at 1):
  list                 show fragments
  split N POS          split fragment N at character POS
  merge N              merge fragment N with the next one
  edit N TEXT          replace the text of fragment N
  undo, redo           move through the edit history
  stats [N]            show counts for fragment N or the whole list
  history              show the edit history
  check                validate the list and the round trip
  save [NAME]          save the exercise (default: current name)
  help                 show this help
  quit                 leave the editor
`

// editOptions holds the parsed flags of the edit command.
type editOptions struct {
	Name   string
	From   string
	Title  string
	Policy string
}

// EditCmd creates the interactive edit command.
func EditCmd(env *Env) *cobra.Command {
	var opts editOptions

	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Adjust exercise fragments interactively",
		Long: `Adjust exercise fragments interactively with split, merge and edit.

Every change is recorded in a bounded history that supports undo and redo.
The exercise is loaded from the store, or created from a transcript with --from.
Nothing is written until "save".

` + editHelp,
		Example: `  dictation edit lesson-1
  dictation edit lesson-2 --from lesson2.txt --title "Lesson 2"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Name = args[0]
			return runEdit(cmd.Context(), env, opts)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "Start from a segmented transcript file (- for stdin)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "Exercise title (default: stored title or the name)")
	cmd.Flags().StringVar(&opts.Policy, "policy", "", "Policy YAML file (default: policy-file setting)")

	return cmd
}

// editSession is the state of one interactive editing run.
type editSession struct {
	env    *Env
	ed     *editor.Editor
	policy fragment.Policy
	store  Store
	name   string
	title  string
	source string
	out    io.Writer
	// saved holds the fragments last written to the store; nil until the
	// exercise exists there.
	saved []string
}

// runEdit loads or creates the fragments and runs the command loop until
// quit or end of input.
func runEdit(ctx context.Context, env *Env, opts editOptions) error {
	if err := name.Validate(opts.Name); err != nil {
		return err
	}
	if opts.From == "-" {
		return fmt.Errorf("--from - would consume the command input: %w", ErrInvalidArgs)
	}

	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		return err
	}
	policy, err := loadPolicy(env, cfg, opts.Policy)
	if err != nil {
		return err
	}

	st, err := openStore(ctx, env, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	var frags, saved []string
	var source string
	title := opts.Title
	if opts.From != "" {
		text, err := readInput(env, opts.From)
		if err != nil {
			return err
		}
		frags, err = segment.New(policy).Segment(text)
		if err != nil {
			return err
		}
		if err := fragment.CheckRoundTrip(text, frags); err != nil {
			warnRoundTrip(env, sourceName(opts.From), err)
		}
		source = text
	} else {
		ex, err := st.Get(ctx, opts.Name)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w (create it with --from <file>)", err)
			}
			return err
		}
		frags = fragment.Texts(ex.Records)
		saved = slices.Clone(frags)
		source = fragment.Join(frags)
		if title == "" {
			title = ex.Title
		}
	}

	s := &editSession{
		env:    env,
		ed:     editor.New(frags, editor.WithCapacity(policy.HistoryCapacity), editor.WithClock(env.Now)),
		policy: policy,
		store:  st,
		name:   opts.Name,
		title:  title,
		source: source,
		out:    env.Stdout,
		saved:  saved,
	}
	return s.loop(ctx, env.Stdin)
}

// loop reads commands from r until quit, end of input or cancellation.
func (s *editSession) loop(ctx context.Context, r io.Reader) error {
	s.printList()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		quit, err := s.exec(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(s.env.Stderr, "Error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	fmt.Fprintln(s.out)
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("cannot read commands: %w", err)
	}
	s.warnUnsaved()
	return nil
}

// exec runs one command line. Editing rejections are reported, not returned.
func (s *editSession) exec(ctx context.Context, line string) (quit bool, err error) {
	cmdName, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmdName) {
	case "":
		return false, nil
	case "list", "ls":
		s.printList()
	case "split":
		return false, s.split(rest)
	case "merge":
		return false, s.merge(rest)
	case "edit":
		return false, s.edit(rest)
	case "undo":
		s.step(s.ed.Undo, "nothing to undo")
	case "redo":
		s.step(s.ed.Redo, "nothing to redo")
	case "stats":
		return false, s.stats(rest)
	case "history":
		s.printHistory()
	case "check":
		s.check()
	case "save":
		return false, s.save(ctx, rest)
	case "help", "?":
		fmt.Fprint(s.out, editHelp)
	case "quit", "exit", "q":
		s.warnUnsaved()
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q (type help)", cmdName)
	}
	return false, nil
}

func (s *editSession) split(args string) error {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return fmt.Errorf("usage: split N POS: %w", ErrInvalidArgs)
	}
	idx, err := s.index(fields[0])
	if err != nil {
		return err
	}
	pos, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("position %q: %w", fields[1], ErrInvalidArgs)
	}
	_, ok := s.ed.Split(idx, pos)
	s.report(ok, "split rejected: position must fall between two words")
	return nil
}

func (s *editSession) merge(args string) error {
	idx, err := s.index(args)
	if err != nil {
		return err
	}
	_, ok := s.ed.Merge(idx)
	s.report(ok, "merge rejected: fragment has no successor")
	return nil
}

func (s *editSession) edit(args string) error {
	num, text, _ := strings.Cut(args, " ")
	idx, err := s.index(num)
	if err != nil {
		return err
	}
	_, ok := s.ed.Edit(idx, text)
	s.report(ok, "edit rejected: text is blank or unchanged")
	return nil
}

func (s *editSession) step(fn func() ([]string, bool), msg string) {
	_, ok := fn()
	s.report(ok, msg)
}

func (s *editSession) report(ok bool, msg string) {
	if !ok {
		fmt.Fprintln(s.out, msg)
		return
	}
	s.printList()
}

func (s *editSession) stats(args string) error {
	frags := s.ed.Fragments()
	if args == "" {
		fmt.Fprintln(s.out, format.Summary(fragment.Validate(frags, s.policy)))
		return nil
	}
	idx, err := s.index(args)
	if err != nil {
		return err
	}
	st := fragment.StatsFor(frags[idx], s.policy)
	fmt.Fprintf(s.out, "%d: %s words=%d long=%t short=%t splittable=%t\n",
		idx+1, format.Badge(st), st.WordCount, st.IsLong, st.IsShort, st.CanSplit)
	return nil
}

func (s *editSession) printHistory() {
	h := s.ed.History()
	for i, e := range h.Entries() {
		marker := " "
		if i == h.Cursor() {
			marker = "*"
		}
		fmt.Fprintf(s.out, "%s %2d  %-7s  %s  %d fragments\n",
			marker, i+1, e.Action, e.Timestamp.Format("15:04:05"), len(e.Fragments()))
	}
}

func (s *editSession) check() {
	frags := s.ed.Fragments()
	fmt.Fprintln(s.out, format.Summary(fragment.Validate(frags, s.policy)))
	if err := fragment.CheckRoundTrip(s.source, frags); err != nil {
		fmt.Fprintf(s.out, "round trip: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "round trip: ok")
}

func (s *editSession) save(ctx context.Context, args string) error {
	target := s.name
	if args != "" {
		if err := name.Validate(args); err != nil {
			return err
		}
		target = args
	}

	ex := store.Exercise{
		Name:      target,
		Title:     s.titleFor(target),
		CreatedAt: s.env.Now(),
		Records:   fragment.Records(s.ed.Fragments(), s.policy),
	}
	if err := s.store.Save(ctx, ex); err != nil {
		return err
	}
	s.name = target
	s.saved = fragment.Texts(ex.Records)
	fmt.Fprintf(s.out, "saved %q (%d fragments)\n", ex.Name, len(ex.Records))
	return nil
}

func (s *editSession) titleFor(target string) string {
	if s.title != "" {
		return s.title
	}
	return target
}

func (s *editSession) printList() {
	fmt.Fprint(s.out, format.Fragments(s.ed.Fragments(), s.policy))
}

// unsaved reports whether the current fragments differ from the stored ones.
func (s *editSession) unsaved() bool {
	return s.saved == nil || !slices.Equal(s.saved, s.ed.Fragments())
}

func (s *editSession) warnUnsaved() {
	if s.unsaved() {
		fmt.Fprintln(s.env.Stderr, "Warning: unsaved changes discarded")
	}
}

// index parses a 1-based fragment number into a 0-based index.
func (s *editSession) index(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("fragment number %q: %w", arg, ErrInvalidArgs)
	}
	if n < 1 || n > s.ed.Len() {
		return 0, fmt.Errorf("%d (have %d): %w", n, s.ed.Len(), ErrInvalidIndex)
	}
	return n - 1, nil
}
