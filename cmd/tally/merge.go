package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/amp-labs/amp-ranked/assert"
	ampErrors "github.com/amp-labs/amp-ranked/errors"
	"github.com/amp-labs/amp-ranked/logger"
	"github.com/amp-labs/amp-ranked/prioritymap"
	"github.com/amp-labs/amp-ranked/spans"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"
)

var ErrUnknownOp = errors.New("unknown merge operation")

const (
	opSum        = "sum"
	opDifference = "difference"
	opMax        = "max"
	opMin        = "min"
)

func (a *app) newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <left> <right>",
		Short: "Combine two tallies written with --format yaml",
		Long: `Merge reads two YAML documents mapping words to counts and combines them.

  sum         adds counts; words from either side are kept
  difference  subtracts right from left; only words of left are kept
  max         keeps the larger count; words from either side are kept
  min         keeps the smaller count; only words of left are kept`,
		Args: cobra.ExactArgs(2), //nolint:mnd
		RunE: a.runMerge,
	}

	cmd.Flags().String("op", opSum, wrap("Merge operation: sum, difference, max or min"))

	return cmd
}

func (a *app) runMerge(cmd *cobra.Command, args []string) error {
	ctx := logger.WithSubsystem(cmd.Context(), appName+".merge")
	op := a.cfg.GetString("op")

	left, err := a.loadTally(ctx, args[0])
	if err != nil {
		return err
	}

	right, err := a.loadTally(ctx, args[1])
	if err != nil {
		return err
	}

	merged, err := spans.StartValErr[*prioritymap.Map[string, int]](ctx, "tally.merge",
		spans.WithAttribute("op", attribute.StringValue(op)),
		spans.WithAttribute("left", attribute.StringValue(args[0])),
		spans.WithAttribute("right", attribute.StringValue(args[1])),
	).Enter(func(ctx context.Context, span trace.Span) (*prioritymap.Map[string, int], error) {
		result, err := combine(op, prioritymap.FromMapping(left, a.mapOptions(ctx)...), right)
		if err != nil {
			return nil, err
		}

		span.SetAttributes(attribute.Int("entries", result.Len()))

		return result, nil
	})
	if err != nil {
		return err
	}

	return a.print(ctx, cmd, merged)
}

func combine(
	op string, left *prioritymap.Map[string, int], right prioritymap.Mapping[string, int],
) (*prioritymap.Map[string, int], error) {
	switch op {
	case opSum:
		return left.Sum(right), nil
	case opDifference:
		return left.Difference(right), nil
	case opMax:
		return left.Max(right), nil
	case opMin:
		return left.Min(right), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}
}

// loadTally reads a YAML mapping of words to integer counts. Every entry with
// a non-integer count is reported, not just the first.
func (a *app) loadTally(ctx context.Context, path string) (prioritymap.Plain[string, int], error) {
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

	var doc map[string]any

	if err := yaml.NewDecoder(input).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, logger.AnnotateError(fmt.Errorf("decoding tally: %w", err), "path", path)
	}

	out := make(prioritymap.Plain[string, int], len(doc))

	var errs ampErrors.Collection

	for key, raw := range doc {
		count, err := assert.Type[int](raw)
		if err != nil {
			errs.Addf("count of %q: %w", key, err)

			continue
		}

		out[key] = count
	}

	if errs.HasError() {
		return nil, logger.AnnotateError(errs.GetError(), "path", path, "invalid", errs.Len())
	}

	logger.Get(ctx).Debug("loaded tally", "entries", len(out))

	return out, nil
}
