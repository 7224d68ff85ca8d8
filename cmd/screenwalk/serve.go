package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/aretw0/screenwalk/internal/adapters/http"
	"github.com/aretw0/screenwalk/pkg/browser"
	"github.com/aretw0/screenwalk/pkg/observability"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored reports, the screen graph and metrics over HTTP",
	Long: `Starts a read-only HTTP API: GET /reports, /reports/{id}, /graph and /metrics.
Reports come from Redis when redis.addr is configured.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		extra := map[string]any{}
		if cmd.Flags().Changed("addr") {
			addr, _ := cmd.Flags().GetString("addr")
			extra["serve.addr"] = addr
		}
		cfg, logger, err := loadConfig(cmd, extra)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		e, err := newEnv(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer e.Close()

		device, err := e.driver.Device(ctx)
		if err != nil {
			return fmt.Errorf("failed to describe device: %w", err)
		}
		g, err := browser.NewGraph(device)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr: cfg.Serve.Addr,
			Handler: httpAdapter.NewHandler(e.store,
				httpAdapter.WithGraph(g),
				httpAdapter.WithMetrics(observability.NewMetrics().Handler()),
				httpAdapter.WithLogger(logger),
			),
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("screenwalk server listening", "address", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("graceful shutdown did not complete: %w", err)
			}
			logger.Info("screenwalk server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
}
