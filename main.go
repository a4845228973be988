// api/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"edaboard/api/config"
	"edaboard/api/dashboard"
	"edaboard/api/fetcher"
	"edaboard/api/handlers"
	"edaboard/api/logger"
	"edaboard/api/store"
)

// app is what every command builds from the environment before doing its work.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	runner *dashboard.Runner
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	f, err := fetcher.New(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize artifact fetcher: %w", err)
	}

	artifactStore := store.NewArtifactStore(f)
	return &app{
		cfg:    cfg,
		log:    log,
		runner: dashboard.NewRunnerFromConfig(artifactStore, log, cfg),
	}, nil
}

func main() {
	root := &cobra.Command{
		Use:           "edaboard",
		Short:         "Serve and export the EDA dashboards",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(newServeCmd(), newExportCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = a.log.Sync() }()

	if a.cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	h := handlers.NewDashboardHandlers(a.runner, a.cfg.EChartsAssetsHost, a.log)
	r := handlers.NewRouter(h, a.log, a.cfg.FrontendOrigin)

	srv := &http.Server{
		Addr:    ":" + a.cfg.Port,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("Dashboard server starting",
			zap.String("addr", "http://localhost:"+a.cfg.Port),
			zap.String("artifact_source", a.cfg.ArtifactSource))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}
	a.log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	a.log.Info("Server exiting.")
	return nil
}
