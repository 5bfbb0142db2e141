package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/nameparser/internal/server"
)

type serveOptions struct {
	addr      string
	dbPath    string
	cacheSize int
	maxBatch  int
}

func newServeCmd(g *globalOptions) *cobra.Command {
	o := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(g.logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			components, st, cleanup, err := buildParser(cmd.Context(), g, o.dbPath, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			cfg := components.Config
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = o.addr
			}
			if cmd.Flags().Changed("cache-size") {
				cfg.Server.CacheSize = o.cacheSize
			}
			if cmd.Flags().Changed("max-batch") {
				cfg.Server.MaxBatch = o.maxBatch
			}

			srv, err := server.New(components.Parser, st, logger, server.Config{
				CacheSize:      cfg.Server.CacheSize,
				MaxBatch:       cfg.Server.MaxBatch,
				PrefixInFamily: cfg.PrefixInFamily,
				Languages:      cfg.Languages,
				Version:        version,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start(cfg.Server.Addr)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("shutdown", zap.Error(err))
				return err
			}
			return <-errCh
		},
	}

	cmd.Flags().StringVar(&o.addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&o.dbPath, "db", os.Getenv("NAMEPARSER_DB"), "SQLite database to store parse results in")
	cmd.Flags().IntVar(&o.cacheSize, "cache-size", 1024, "Number of parse results to cache (0 disables the cache)")
	cmd.Flags().IntVar(&o.maxBatch, "max-batch", 100, "Maximum names per batch request")
	return cmd
}
