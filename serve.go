package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"Checklist/Config"
	"Checklist/CronJobs"
	"Checklist/Drafts"
	"Checklist/FiberConfig"
	"Checklist/Logger"
	"Checklist/Models"
	"Checklist/Report"
	"Checklist/Upload"
)

func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := Config.Load(path)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, path)
		},
	}
}

func serve(ctx context.Context, cfg *Config.Config, path string) error {
	log, err := Logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := Models.Connect(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	store := Drafts.NewStore(db, log.Named("drafts"))

	janitor := CronJobs.NewDraftJanitor(store, cfg.Drafts, log.Named("janitor"))
	if err := janitor.Start(); err != nil {
		return err
	}
	defer janitor.Stop()
	go reloadOnHangup(ctx, path, janitor, log)

	app := FiberConfig.NewApp(cfg.Server, log.Named("http"))
	FiberConfig.SetupRoutes(app, FiberConfig.Deps{
		Config:   cfg,
		Log:      log,
		Drafts:   store,
		Renderer: Report.NewRenderer(),
		Uploader: Upload.NewClient(cfg.Upload.URL, cfg.Upload.Timeout, log.Named("upload")),
	})

	log.Info("starting",
		zap.String("version", getVersion()),
		zap.String("database", cfg.Database.Driver),
		zap.Int("port", cfg.Server.Port))
	return FiberConfig.Serve(ctx, app, cfg.Server.Port, log)
}

type reconfigurer interface {
	Reconfigure(cfg Config.DraftsConfig) error
}

// reloadOnHangup re-reads the configuration on SIGHUP and applies the draft
// retention settings. Other settings need a restart.
func reloadOnHangup(ctx context.Context, path string, janitor reconfigurer, log *zap.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := reloadDrafts(path, janitor); err != nil {
				log.Error("reloading configuration", zap.Error(err))
				continue
			}
			log.Info("configuration reloaded")
		}
	}
}

func reloadDrafts(path string, janitor reconfigurer) error {
	cfg, err := Config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return janitor.Reconfigure(cfg.Drafts)
}
