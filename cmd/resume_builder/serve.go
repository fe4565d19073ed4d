package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/aiclient"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/snapshot"
	"github.com/jonathan/resume-builder/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the resume document, template previews, PDF export and the AI backend proxy.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	repo, closeRepo, err := openRepository(ctx, cfg.Storage)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer closeRepo()

	registry, err := rendering.Builtin()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	initial, _ := snapshot.Restore(ctx, repo, cfg.Storage.Key)
	cancel()

	st := store.New(
		store.WithInitialState(initial),
		store.WithTemplateResolver(registry.ResolveID),
	)
	persister := snapshot.NewPersister(repo, snapshot.WithKey(cfg.Storage.Key))
	detach := persister.Attach(st)
	defer detach()

	exporter := export.NewExporter(&export.ChromePrinter{
		Timeout: cfg.PDF.Timeout.Std(),
		Verbose: cfg.Verbose,
	}, cfg.PDF.Enabled)

	srvCfg := server.Config{
		Addr:            cfg.Server.Address(),
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		AITimeout:       cfg.AI.Timeout.Std(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout.Std(),
	}
	if cfg.Server.RateLimit {
		srvCfg.RateLimit = ratelimit.LoadConfig()
	}

	srv, err := server.New(srvCfg, server.Deps{
		Store:    st,
		Registry: registry,
		AI:       aiclient.New(cfg.AI.URL, cfg.AI.Timeout.Std()),
		Exporter: exporter,
		Saves:    persister,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
