package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"runtime"
	"strings"
	"unicode"

	"github.com/alitto/pond/v2"
	"github.com/amp-labs/amp-ranked/logger"
	"github.com/amp-labs/amp-ranked/prioritymap"
	"github.com/amp-labs/amp-ranked/spans"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
	"golang.org/x/text/cases"
)

// maxWordSize bounds a single whitespace-separated token.
const maxWordSize = 1 << 20

func (a *app) newCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count [files...]",
		Short: "Count words in files, or stdin when none are given",
		Long: `Count splits its input on whitespace, strips punctuation from both ends
of every word, and prints the words ranked by how often they occur.

Files ending in .gz, .zst, .br, .lz4 or .sz are decompressed first. Input in
another character set than UTF-8 is detected and converted unless --charset
names it explicitly.`,
		RunE: a.runCount,
	}

	cmd.Flags().Bool("fold", false, wrap("Fold case before counting, so Go and GO count as one word"))
	cmd.Flags().Int("min", 0, wrap("Drop words seen fewer than this many times"))
	cmd.Flags().Int("workers", runtime.NumCPU(), wrap("How many files are read at the same time"))
	cmd.Flags().String("charset", "", wrap("Character set of the input; detected when empty"))

	return cmd
}

func (a *app) runCount(cmd *cobra.Command, args []string) error {
	ctx := logger.WithSubsystem(cmd.Context(), appName+".count")
	log := logger.Get(ctx)

	var (
		total *prioritymap.Map[string, int]
		err   error
	)

	if len(args) == 0 {
		total, err = a.countReader(ctx, cmd.InOrStdin())
	} else {
		total, err = a.countFiles(ctx, args)
	}

	if err != nil {
		log.Error("counting failed", "error", err)

		return err
	}

	if minimum := a.cfg.GetInt("min"); minimum > 1 {
		dropped := total.Prune(minimum - 1)
		log.Debug("dropped rare words", "below", minimum, "dropped", dropped)
	}

	return a.print(ctx, cmd, total)
}

// countReader tallies stdin, which gets the same charset handling as files.
func (a *app) countReader(ctx context.Context, r io.Reader) (*prioritymap.Map[string, int], error) {
	text, detected, err := toUTF8(r, a.cfg.GetString("charset"))
	if err != nil {
		return nil, err
	}

	logger.Get(ctx).Debug("reading stdin", "charset", detected)

	return a.tally(ctx, text)
}

// countFiles tallies every file on a bounded worker pool and sums the results.
func (a *app) countFiles(ctx context.Context, paths []string) (*prioritymap.Map[string, int], error) {
	workers := max(a.cfg.GetInt("workers"), 1)

	pool := pond.NewResultPool[*prioritymap.Map[string, int]](workers, pond.WithContext(ctx))
	defer pool.StopAndWait()

	var words atomic.Int64

	group := pool.NewGroup()

	for _, path := range paths {
		group.SubmitErr(func() (*prioritymap.Map[string, int], error) {
			return spans.StartValErr[*prioritymap.Map[string, int]](ctx, "tally.count_file",
				spans.WithAttribute("op", attribute.StringValue("count")),
				spans.WithAttribute("path", attribute.StringValue(path)),
			).Enter(func(ctx context.Context, span trace.Span) (*prioritymap.Map[string, int], error) {
				counted, err := a.countFile(ctx, path)
				if err != nil {
					return nil, err
				}

				span.SetAttributes(attribute.Int("distinct", counted.Len()))
				words.Add(int64(counted.Len()))

				return counted, nil
			})
		})
	}

	results, err := group.Wait()
	if err != nil {
		return nil, err
	}

	total := prioritymap.New(a.mapOptions(ctx)...)
	for _, counted := range results {
		total.MergeSum(counted)
	}

	logger.Get(ctx).Debug("counted files", "files", len(paths), "distinct_per_file", words.Load(), "distinct", total.Len())

	return total, nil
}

func (a *app) countFile(ctx context.Context, path string) (*prioritymap.Map[string, int], error) {
	ctx = logger.With(ctx, "path", path)

	input, err := openInput(path, a.cfg.GetString("charset"))
	if err != nil {
		return nil, err
	}

	defer func() {
		if err := input.Close(); err != nil {
			logger.Get(ctx).Warn("closing input", "error", err)
		}
	}()

	counted, err := a.tally(ctx, input)
	if err != nil {
		return nil, logger.AnnotateError(err, "path", path)
	}

	return counted, nil
}

func (a *app) tally(ctx context.Context, r io.Reader) (*prioritymap.Map[string, int], error) {
	tok := newTokenizer(a.cfg.GetBool("fold"))

	counted := prioritymap.CountSeq(tok.words(r), a.mapOptions(ctx)...)
	if err := tok.Err(); err != nil {
		return nil, fmt.Errorf("reading words: %w", err)
	}

	return counted, nil
}

// tokenizer splits text into words. It is not safe for concurrent use.
type tokenizer struct {
	fold  bool
	caser cases.Caser
	err   error
}

func newTokenizer(fold bool) *tokenizer {
	return &tokenizer{fold: fold, caser: cases.Fold()}
}

// words yields the words of r. Read errors end the sequence and are reported
// by Err afterwards.
func (t *tokenizer) words(r io.Reader) iter.Seq[string] {
	return func(yield func(string) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxWordSize)
		scanner.Split(bufio.ScanWords)

		for scanner.Scan() {
			word := strings.TrimFunc(scanner.Text(), notWordRune)
			if word == "" {
				continue
			}

			if t.fold {
				word = t.caser.String(word)
			}

			if !yield(word) {
				return
			}
		}

		t.err = scanner.Err()
	}
}

func (t *tokenizer) Err() error {
	return t.err
}

func notWordRune(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsNumber(r)
}
