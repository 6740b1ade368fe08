// Package commands defines the vsm command line: a root command that runs
// the whole pipeline and one subcommand per stage.
package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/pipeline"
	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/metrics"
)

// DefaultConfigFile is read when --config is not given and the file exists.
const DefaultConfigFile = "vsm.yaml"

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

// stageFunc runs one or more pipeline stages.
type stageFunc func(p *pipeline.Pipeline, ctx context.Context) error

// NewRootCmd creates the root command. Without a subcommand it runs every
// stage in order.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:   "vsm",
		Short: "Vector-space retrieval pipeline",
		Long: `vsm builds a tf-idf vector-space model from an XML document collection
and ranks free-text queries against it by cosine similarity.

Stages, each configured by a KEY=VALUE stage file:
  index    corpus XML -> inverted list            (GLI.CFG)
  model    inverted list -> vector model          (INDEX.CFG)
  queries  query XML -> processed/expected files  (PC.CFG)
  search   model + queries -> ranked results      (BUSCA.CFG)

Examples:
  vsm
  vsm --config vsm.yaml run
  vsm model --log-level debug`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStages(cmd, opts, (*pipeline.Pipeline).RunAll)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "pipeline config file (default "+DefaultConfigFile+" if present)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: text or json (overrides config)")

	cmd.AddCommand(
		NewRunCmd(opts),
		NewIndexCmd(opts),
		NewModelCmd(opts),
		NewQueriesCmd(opts),
		NewSearchCmd(opts),
	)
	return cmd
}

// Execute runs the root command until completion or SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// ReportedError marks a failure that was already logged by the command.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }

// IsReported reports whether err was already logged.
func IsReported(err error) bool {
	var r *ReportedError
	return errors.As(err, &r)
}

func loadConfig(opts *globalOptions) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Logging.Format = opts.logFormat
	}
	return cfg, nil
}

// runStages loads configuration, runs fn under a fresh run id, pushes the
// run's metrics and logs a failure exactly once.
func runStages(cmd *cobra.Command, opts *globalOptions, fn stageFunc) error {
	// .env is optional.
	_ = godotenv.Load()

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	ctx := logger.WithRunID(cmd.Context(), runID)
	base := logger.New(cmd.OutOrStdout(), cfg.Logging.Level, cfg.Logging.Format)
	log := logger.FromContext(ctx, base)
	log.Info("run started", "command", cmd.Name(), "config", cfg.String())

	m := metrics.New()
	runErr := fn(pipeline.New(cfg, m, base), ctx)

	pushErr := m.PushWithRetry(ctx, metrics.PushOptions{
		URL:      cfg.Metrics.PushgatewayURL,
		Job:      cfg.Metrics.Job,
		RunID:    runID,
		Attempts: cfg.Metrics.PushAttempts,
		Timeout:  cfg.Metrics.PushTimeout,
	}, log)
	if pushErr != nil {
		log.Warn("metrics push failed", "error", pushErr)
	}
	if runErr != nil {
		log.Error("run failed", "command", cmd.Name(), "kind", apperrors.Kind(runErr), "error", runErr)
		return &ReportedError{Err: runErr}
	}
	log.Info("run finished", "command", cmd.Name())
	return nil
}
