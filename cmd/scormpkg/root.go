package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrhapile/scorm-extractor/internal/config"
	"github.com/mrhapile/scorm-extractor/internal/logging"
	"github.com/mrhapile/scorm-extractor/pkg/scorm"
)

// app carries state shared by subcommands after PersistentPreRunE.
type app struct {
	configPath string
	verbose    bool
	sizeLimit  string

	cfg       *config.Config
	logger    *zap.Logger
	newLogger func(config.LoggingConfig, bool) (*zap.Logger, error)
}

func newApp() *app {
	return &app{newLogger: logging.New}
}

func newRootCmd() *cobra.Command {
	return newApp().rootCmd()
}

// execute runs cmd and flushes the logger whether or not the command failed.
func (a *app) execute(cmd *cobra.Command) error {
	defer a.sync()
	return cmd.Execute()
}

func (a *app) sync() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "scormpkg",
		Short:         "Inspect and extract SCORM content packages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "scormpkg.yaml", "path to the YAML config file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&a.sizeLimit, "size-limit", "", "maximum package size, e.g. 300MiB (overrides config)")

	rootCmd.AddCommand(newInspectCmd(a))
	rootCmd.AddCommand(newExtractCmd(a))
	return rootCmd
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.sizeLimit != "" {
		cfg.Scorm.PackageSizeLimit = a.sizeLimit
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	a.logger, err = a.newLogger(cfg.Logging, a.verbose)
	if err != nil {
		return err
	}
	a.logger.Debug("Configuration loaded",
		zap.String("path", a.configPath),
		zap.String("size_limit", cfg.Scorm.PackageSizeLimit),
		zap.String("output_dir", cfg.Storage.OutputDir))
	return nil
}

// extractOptions returns the scorm options derived from configuration.
func (a *app) extractOptions() ([]scorm.Option, error) {
	limit, err := a.cfg.SizeLimitBytes()
	if err != nil {
		return nil, fmt.Errorf("size limit: %w", err)
	}
	return []scorm.Option{
		scorm.WithSizeLimit(limit),
		scorm.WithLogger(a.logger),
	}, nil
}
