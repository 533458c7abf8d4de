package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tordrt/schemasync"
	"github.com/tordrt/schemasync/internal/config"
	"github.com/tordrt/schemasync/internal/schema"
)

// configKey is used to store config in context.
type configKey struct{}

func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "schemasync",
		Short: "Synchronize SQLite tables with declarative models",
		Long: `schemasync recreates SQLite tables from model declarations while keeping their rows.

Each sync backs up a table, drops it, creates it from the model and restores
the rows, copying the columns the new model still has.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Config file (default: ./schemasync.yaml if present)")
	flags.String("database", "", "Database URL: sqlite://path, mysql://dsn or postgres://...")
	flags.StringP("models", "m", config.DefaultModelsFile, "Model declarations file")
	flags.StringSliceP("tables", "t", nil, "Specific tables (comma-separated, optional)")
	flags.StringP("schema", "s", "", "Database schema name for inspect (default: public for PostgreSQL)")
	flags.StringP("format", "f", "text", "Output format: text or markdown")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(newSyncCmd(), newPlanCmd(), newInspectCmd())
	return rootCmd
}

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Back up, recreate and restore every model's table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd)
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			if cfg.Database == "" {
				return fmt.Errorf("--database must be specified")
			}

			models, err := schema.LoadModels(cfg.Models)
			if err != nil {
				return err
			}

			logger.Info("starting sync", "models", len(models), "config", cfg.File)
			return schemasync.Sync(cmd.Context(), cfg.Database, models, &schemasync.Options{
				Tables: cfg.Tables,
				Logger: logger,
			})
		},
	}
}

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the statements a sync would run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd)

			models, err := schema.LoadModels(cfg.Models)
			if err != nil {
				return err
			}

			plans, err := schemasync.Plan(models, &schemasync.Options{Tables: cfg.Tables})
			if err != nil {
				return err
			}
			return schemasync.FormatPlans(plans, &schemasync.OutputOptions{
				Writer: cmd.OutOrStdout(),
				Format: cfg.Format,
			})
		},
	}
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Report whether tables exist, their row counts and structure",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd)
			if cfg.Database == "" {
				return fmt.Errorf("--database must be specified")
			}

			s, err := schemasync.Inspect(cmd.Context(), cfg.Database, &schemasync.Options{
				Tables:     cfg.Tables,
				SchemaName: cfg.Schema,
			})
			if err != nil {
				return fmt.Errorf("failed to inspect database: %w", err)
			}
			return schemasync.FormatSchema(s, &schemasync.OutputOptions{
				Writer: cmd.OutOrStdout(),
				Format: cfg.Format,
			})
		},
	}
}

func getConfig(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{}
}

// newLogger builds the CLI logger writing to w
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level: %s", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", format)
	}
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
