package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/statuspad/statuspad"
	"github.com/statuspad/statuspad/admission"
	"github.com/statuspad/statuspad/config"
	statushttp "github.com/statuspad/statuspad/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the statuspad HTTP server.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 3000, "HTTP server port")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	directory := statuspad.NewDirectory(statuspad.DefaultUsers()...)

	limiter := admission.NewRateLimiter(admission.RateLimitConfig{
		Window:      cfg.RateLimit.Window,
		MaxRequests: cfg.RateLimit.MaxRequests,
	}, statuspad.SystemClock())
	limiter.StartJanitor(ctx, cfg.RateLimit.SweepInterval)

	gate := admission.NewGate(cfg.Maintenance.RetryAfter)
	authn := admission.NewAuthenticator(cfg.Auth.Token)

	handlerConfig := statushttp.HandlerConfig{
		Development:    !cfg.IsProd(),
		CORS:           cfg.CORS,
		Gate:           gate,
		Limiter:        limiter,
		TrustForwarded: cfg.RateLimit.TrustForwarded,
		Authenticator:  authn,
	}

	handler := statushttp.NewHandler(&handlerConfig, directory)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server",
		"addr", addr,
		"env", cfg.Env,
		"rate_limit_window", cfg.RateLimit.Window,
		"rate_limit_max", cfg.RateLimit.MaxRequests,
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
