// Package cli implements the hacor command line.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/okian/hacor/internal/adapters/render"
	"github.com/okian/hacor/internal/app"
	"github.com/okian/hacor/internal/config"
	"github.com/okian/hacor/pkg/logger"
	"github.com/okian/hacor/pkg/metrics"
)

var version = "0.1.0"

type globalFlags struct {
	configPath   string
	output       string
	logLevel     string
	metricsFile  string
	strictPoints bool
}

// state is filled by the root pre-run hook and shared by every subcommand.
type state struct {
	flags    globalFlags
	cfg      *config.Config
	svc      *app.Service
	renderer render.Renderer
	log      logger.Logger

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	st := &state{in: in, out: out, errOut: errOut}
	root := newRootCmd(st)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	runErr := root.ExecuteContext(ctx)

	code := ExitOK
	if runErr != nil {
		var msg string
		code, msg = describe(runErr)
		fmt.Fprintln(errOut, msg) //nolint:errcheck
	}

	if st.cfg != nil && st.cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(st.cfg.MetricsFile, nil); err != nil {
			st.log.Warn(ctx, "metrics export failed", logger.String("path", st.cfg.MetricsFile), logger.Error(err))
		}
	}
	return code
}

func newRootCmd(st *state) *cobra.Command {
	root := &cobra.Command{
		Use:           "hacor",
		Short:         "Updated HACOR score for predicting NIV failure",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return st.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&st.flags.configPath, "config", "", "YAML config file (default $"+config.EnvConfigFile+")")
	pf.StringVarP(&st.flags.output, "output", "o", "", "Output format: text or json")
	pf.StringVar(&st.flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&st.flags.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the command")
	pf.BoolVar(&st.flags.strictPoints, "strict-points", false, "Reject point values the dropdowns do not offer")

	root.AddCommand(
		newAssessCmd(st),
		newSofaCmd(st),
		newClassifyCmd(st),
		newComponentsCmd(st),
		newTiersCmd(st),
		newBatchCmd(st),
		newGenerateCmd(st),
	)
	return root
}

// setup layers flags over the loaded config and builds the collaborators.
func (st *state) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx, st.flags.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = st.flags.output
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = st.flags.logLevel
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = st.flags.metricsFile
	}
	if flags.Changed("strict-points") {
		cfg.StrictPoints = st.flags.strictPoints
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(logger.WithWriter(st.errOut), logger.WithFormat(cfg.LogFormat)); err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}
	st.log = logger.Named("cli")

	metrics.Configure(
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithMetricsEnabled(cfg.MetricsEnabled),
		metrics.WithCustomLabels(cfg.MetricsLabels),
	)

	r, err := render.New(cfg.Output)
	if err != nil {
		return err
	}

	st.cfg = cfg
	st.renderer = r
	st.svc = app.New(
		app.WithLogger(logger.Named("service")),
		app.WithStrictPoints(cfg.StrictPoints),
		app.WithBatchWorkers(cfg.BatchWorkers),
	)
	st.log.Debug(ctx, "configured",
		logger.String("output", cfg.Output),
		logger.Bool("strict_points", cfg.StrictPoints),
		logger.Int("batch_workers", cfg.BatchWorkers),
		logger.Bool("metrics_enabled", cfg.MetricsEnabled),
	)
	return nil
}
