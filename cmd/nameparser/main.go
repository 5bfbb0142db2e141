package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cognicore/nameparser/pkg/nameparser/config"
	"github.com/cognicore/nameparser/pkg/nameparser/store"
	"github.com/cognicore/nameparser/pkg/nameparser/store/sqlite"
)

var version = "dev"

// globalOptions holds the flags shared by every command
type globalOptions struct {
	configPath string
	languages  []string
	logLevel   string
	noColor    bool
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:          "nameparser",
		Short:        "Split personal and company names into their parts",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", os.Getenv("NAMEPARSER_CONFIG"), "Config file (YAML)")
	flags.StringArrayVar(&opts.languages, "lang", nil, "Built-in language to load (repeatable, overrides the config file)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newParseCmd(opts),
		newServeCmd(opts),
		newLanguagesCmd(),
	)
	return root
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// buildParser loads the configuration and opens the store when dbPath (or
// store.path in the config file) is set. cleanup closes the store.
func buildParser(ctx context.Context, opts *globalOptions, dbPath string, logger *zap.Logger) (*config.Components, store.Store, func(), error) {
	loader := config.Loader{
		ConfigPath: opts.configPath,
		Languages:  opts.languages,
		StorePath:  dbPath,
	}

	components, err := loader.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	if components.Config.Store.Path == "" {
		return components, nil, func() {}, nil
	}

	st, err := sqlite.OpenSQLite(ctx, components.Config.Store.Path, sqlite.WithLogger(logger))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open store: %w", err)
	}

	cleanup := func() {
		if err := st.Close(); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}
	return components, st, cleanup, nil
}
