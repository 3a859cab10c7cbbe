package cli

import (
	"cmp"
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-dictation/internal/config"
	"github.com/alnah/go-dictation/internal/format"
	"github.com/alnah/go-dictation/internal/fragment"
	"github.com/alnah/go-dictation/internal/name"
	"github.com/alnah/go-dictation/internal/punctuate"
	"github.com/alnah/go-dictation/internal/segment"
	"github.com/alnah/go-dictation/internal/store"
)

// MaxParallel is the upper bound for concurrently processed inputs.
const MaxParallel = 10

// segmentOptions holds the parsed flags of the segment command.
type segmentOptions struct {
	Inputs    []string
	Format    string
	Output    string
	Save      string
	Title     string
	Punctuate bool
	Policy    string
	Parallel  int
	Strict    bool
}

// segmentResult is the outcome for one input.
type segmentResult struct {
	Source     string              `json:"source"`
	Fragments  []fragment.Record   `json:"fragments"`
	Validation fragment.Validation `json:"validation"`
}

// clampParallel constrains the worker count to [1, min(MaxParallel, inputs)].
func clampParallel(n, inputs int) int {
	return max(1, min(n, MaxParallel, max(inputs, 1)))
}

// sourceName returns the display name of an input path.
func sourceName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return filepath.Base(path)
}

// SegmentCmd creates the segment command.
// The env parameter provides injectable dependencies for testing.
func SegmentCmd(env *Env) *cobra.Command {
	var opts segmentOptions

	cmd := &cobra.Command{
		Use:   "segment [file...]",
		Short: "Split transcripts into dictation fragments",
		Long: `Split transcripts into dictation fragments.

Each input is split into sentences, and sentences longer than the policy
ceiling are split recursively at punctuation, then at word boundaries.
Fragments joined with single spaces are checked against the input text.
A mismatch (for example an abbreviation such as "U.S." split in two) is
reported as a warning, or as an error with --strict.

Reads stdin when no file is given or the file is "-".
With --punctuate, raw speech-recognition output is first punctuated through
OpenAI (requires OPENAI_API_KEY); the words themselves are never changed.`,
		Example: `  dictation segment lesson.txt
  dictation segment lesson.txt --save lesson-1 --title "Lesson 1"
  dictation segment *.txt --format json -o fragments.json
  cat raw.txt | dictation segment --punctuate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Inputs = args
			return runSegment(cmd.Context(), env, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", FormatText, "Output format: text, json")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write output to this file instead of stdout")
	cmd.Flags().StringVarP(&opts.Save, "save", "s", "", "Save the fragments as an exercise with this name")
	cmd.Flags().StringVar(&opts.Title, "title", "", "Exercise title (with --save, default: the name)")
	cmd.Flags().BoolVar(&opts.Punctuate, "punctuate", false, "Restore punctuation with OpenAI before segmenting")
	cmd.Flags().StringVar(&opts.Policy, "policy", "", "Policy YAML file (default: policy-file setting)")
	cmd.Flags().IntVarP(&opts.Parallel, "parallel", "p", 4, "Max inputs processed concurrently (1-10)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail when the fragments do not reproduce the input text")

	return cmd
}

// runSegment executes the segmentation pipeline.
// Validation order: format -> inputs -> save name -> config -> policy -> API key.
func runSegment(ctx context.Context, env *Env, opts segmentOptions) error {
	// === VALIDATION (fail-fast) ===

	outFormat, err := parseFormat(opts.Format)
	if err != nil {
		return err
	}

	inputs := opts.Inputs
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	if n := countStdin(inputs); n > 1 {
		return fmt.Errorf("stdin (-) given %d times: %w", n, ErrInvalidArgs)
	}

	if opts.Save != "" {
		if len(inputs) > 1 {
			return fmt.Errorf("--save needs a single input, got %d: %w", len(inputs), ErrInvalidArgs)
		}
		if err := name.Validate(opts.Save); err != nil {
			return err
		}
	}

	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		return err
	}

	policy, err := loadPolicy(env, cfg, opts.Policy)
	if err != nil {
		return err
	}

	var punct punctuate.Punctuator
	if opts.Punctuate {
		apiKey := env.Getenv(EnvOpenAIAPIKey)
		if apiKey == "" {
			return fmt.Errorf("%w (set it with: export %s=sk-...)", ErrAPIKeyMissing, EnvOpenAIAPIKey)
		}
		punct = env.PunctuatorFactory.NewPunctuator(apiKey, env.Logger)
	}

	// === PROCESSING ===

	seg := segment.New(policy)
	results := make([]segmentResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(clampParallel(opts.Parallel, len(inputs)))

	for i, input := range inputs {
		g.Go(func() error {
			res, err := segmentOne(gctx, env, seg, punct, input, opts.Strict)
			if err != nil {
				return fmt.Errorf("%s: %w", sourceName(input), err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// === OUTPUT ===

	rendered, err := renderSegmentResults(results, outFormat, policy)
	if err != nil {
		return err
	}

	if opts.Output != "" {
		path := config.ResolveOutputPath(config.ExpandPath(opts.Output), cfg.OutputDir, "")
		if err := writeFileAtomic(path, rendered); err != nil {
			return err
		}
		fmt.Fprintf(env.Stderr, "Wrote %s\n", path)
	} else if _, err := fmt.Fprint(env.Stdout, rendered); err != nil {
		return err
	}

	if opts.Save != "" {
		ex := store.Exercise{
			Name:      opts.Save,
			Title:     cmp.Or(opts.Title, opts.Save),
			CreatedAt: env.Now(),
			Records:   results[0].Fragments,
		}
		err := withStore(ctx, env, func(st Store) error {
			return st.Save(ctx, ex)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(env.Stderr, "Saved exercise %q (%d fragments)\n", ex.Name, len(ex.Records))
	}

	return nil
}

// segmentOne reads, optionally punctuates, segments and verifies one input.
// A round-trip mismatch is a warning unless strict is set.
func segmentOne(ctx context.Context, env *Env, seg *segment.Segmenter, punct punctuate.Punctuator, input string, strict bool) (segmentResult, error) {
	text, err := readInput(env, input)
	if err != nil {
		return segmentResult{}, err
	}

	if punct != nil {
		fmt.Fprintf(env.Stderr, "Punctuating %s...\n", sourceName(input))
		text, err = punct.Punctuate(ctx, text)
		if err != nil {
			return segmentResult{}, err
		}
	}

	frags, err := seg.Segment(text)
	if err != nil {
		return segmentResult{}, err
	}
	if err := fragment.CheckRoundTrip(text, frags); err != nil {
		if strict {
			return segmentResult{}, err
		}
		warnRoundTrip(env, sourceName(input), err)
	}

	policy := seg.Policy()
	env.Logger.Debug("segmented input", "source", sourceName(input), "words", fragment.WordCount(text), "fragments", len(frags))

	return segmentResult{
		Source:     sourceName(input),
		Fragments:  fragment.Records(frags, policy),
		Validation: fragment.Validate(frags, policy),
	}, nil
}

// renderSegmentResults formats results. A single result is rendered on its
// own; several get a header each (text) or become a JSON array.
func renderSegmentResults(results []segmentResult, outFormat string, p fragment.Policy) (string, error) {
	var b strings.Builder

	if outFormat == FormatJSON {
		var v any = results
		if len(results) == 1 {
			v = results[0]
		}
		if err := writeJSON(&b, v); err != nil {
			return "", err
		}
		return b.String(), nil
	}

	for i, r := range results {
		if len(results) > 1 {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "== %s ==\n", r.Source)
		}
		b.WriteString(format.Fragments(fragment.Texts(r.Fragments), p))
		b.WriteString(format.Summary(r.Validation))
		b.WriteString("\n")
	}
	return b.String(), nil
}

// warnRoundTrip reports fragments that no longer match their source text.
func warnRoundTrip(env *Env, source string, err error) {
	fmt.Fprintf(env.Stderr, "Warning: %s: %v\n", source, err)
	env.Logger.Warn("round trip mismatch", "source", source, "error", err)
}

func countStdin(inputs []string) int {
	return len(slices.DeleteFunc(slices.Clone(inputs), func(s string) bool { return s != "-" }))
}
