package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/amp-labs/amp-ranked/closer"
	"github.com/amp-labs/amp-ranked/compare"
	"github.com/amp-labs/amp-ranked/logger"
	"github.com/amp-labs/amp-ranked/prioritymap"
	"github.com/amp-labs/amp-ranked/spans"
	"github.com/amp-labs/amp-ranked/telemetry"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/trace"
)

const appName = "tally"

// app carries what every subcommand needs once flags have been resolved.
type app struct {
	cfg *viper.Viper
	log *slog.Logger

	// cleanup runs after the command finishes, whatever its outcome.
	cleanup *closer.Stack

	// tracing replaces the provider built from the environment when set.
	tracing trace.TracerProvider
}

func newApp() *app {
	return &app{
		cfg:     newConfig(),
		log:     logger.Discard(),
		cleanup: closer.NewStack(),
	}
}

// execute runs cmd and then releases whatever setup acquired.
func (a *app) execute(cmd *cobra.Command) error {
	err := cmd.Execute()

	if closeErr := a.cleanup.Close(); closeErr != nil {
		a.log.Warn("cleanup failed", "error", closeErr)

		return errors.Join(err, closeErr)
	}

	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Rank words by how often they occur",
		Long: `tally counts words and prints them ranked by frequency.

Every flag can also be set through the environment with a TALLY_ prefix,
for example TALLY_FORMAT=json. Variables are read from .env.local and .env
in the working directory when present.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.String("format", formatText, wrap("Output format: text, json or yaml"))
	flags.Int("top", -1, wrap("Print only the N most frequent entries; negative prints all"))
	flags.Bool("natural", false, wrap("Order tied keys naturally, so item2 sorts before item10"))
	flags.String("log-level", "warn", wrap("Minimum log level: debug, info, warn or error"))
	flags.Bool("log-json", false, wrap("Write logs as JSON instead of text"))
	flags.String("log-output", "stderr", wrap("Where logs go: stderr or stdout"))
	flags.Bool("quiet", false, wrap("Suppress all log output"))

	root.AddCommand(a.newCountCmd())
	root.AddCommand(a.newMergeCmd())

	return root
}

// setup binds the resolved flags to the configuration, configures logging
// and tracing, and stores both in the command's context.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.cfg.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	level, err := logger.ParseLevel(a.cfg.GetString("log-level"))
	if err != nil {
		return err
	}

	var output io.Writer = cmd.ErrOrStderr()

	if name := a.cfg.GetString("log-output"); name != "stderr" {
		file, err := logger.ParseOutput(name)
		if err != nil {
			return err
		}

		output = file
	}

	configured := logger.ConfigureLogging(appName,
		logger.WithLevel(level),
		logger.WithJSON(a.cfg.GetBool("log-json")),
		logger.WithOutput(output))

	// The context carries this run's handler, so concurrent runs in one
	// process keep their own output.
	ctx := logger.WithLogger(cmd.Context(), configured)
	ctx = logger.With(logger.WithSubsystem(ctx, appName), "run_id", runID())
	ctx = logger.WithMuted(ctx, a.cfg.GetBool("quiet"))

	provider, err := a.tracerProvider(ctx)
	if err != nil {
		return err
	}

	if provider != nil {
		ctx = spans.WithTracer(ctx, provider.Tracer(appName))
	}

	cmd.SetContext(ctx)

	a.log = logger.Get(ctx)

	return nil
}

// tracerProvider returns the provider spans are recorded with, or nil when
// tracing is off. A provider built here is shut down by execute.
func (a *app) tracerProvider(ctx context.Context) (trace.TracerProvider, error) {
	if a.tracing != nil {
		return a.tracing, nil
	}

	config, err := telemetry.LoadConfig(a.cfg, appName)
	if err != nil {
		return nil, err
	}

	provider, err := telemetry.Initialize(ctx, config)
	if err != nil || provider == nil {
		return nil, err
	}

	a.cleanup.Add(closer.Func(func() error {
		return provider.Shutdown(context.WithoutCancel(ctx))
	}))

	return provider.TracerProvider(), nil
}

func runID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}

// mapOptions builds the container options shared by every subcommand.
//
// Keys are ordered in reverse so that, among equal counts, the descending
// walk used for printing yields keys in ascending order.
func (a *app) mapOptions(ctx context.Context) []prioritymap.Option[string, int] {
	var keyOrder compare.Func[string] = compare.Ordered[string]
	if a.cfg.GetBool("natural") {
		keyOrder = compare.Natural
	}

	return []prioritymap.Option[string, int]{
		prioritymap.WithKeyOrder[string, int](compare.Reverse(keyOrder)),
		prioritymap.WithLogger[string, int](logger.Get(ctx)),
	}
}

// print writes the most frequent entries of m in the configured format.
func (a *app) print(ctx context.Context, cmd *cobra.Command, m *prioritymap.Map[string, int]) error {
	format := a.cfg.GetString("format")
	top := a.cfg.GetInt("top")

	logger.Get(ctx).Debug("printing tally", "entries", m.Len(), "top", top, "format", format)

	if err := render(cmd.OutOrStdout(), format, m.MostCommon(top)); err != nil {
		return fmt.Errorf("printing tally: %w", err)
	}

	return nil
}
