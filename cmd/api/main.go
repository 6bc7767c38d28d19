package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/app"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/config"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/workers"
)

func main() {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.ValidateServer()
	}
	if err != nil {
		log.Fatalf("Critical: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, time.Now())
	stop()
	if err != nil {
		log.Fatalf("Critical: %v", err)
	}
}

// run serves until ctx is done or the listener fails. Every resource it
// opens is released before it returns.
func run(ctx context.Context, cfg *config.Config, startTime time.Time) error {
	application, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer application.Close()

	scheduler, err := workers.NewScheduler(cfg.StreakCron, application.Streaks)
	if err != nil {
		return fmt.Errorf("invalid STREAK_CRON %q: %w", cfg.StreakCron, err)
	}

	application.Streaks.Start(ctx)
	scheduler.Start(ctx)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      application.Router(startTime),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Kanso Routine Engine running on http://localhost:%s (storage: %s)", cfg.Port, cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		log.Println("Stop signal received. Shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown error: %v", err)
	}

	log.Println("Server stopped gracefully.")
	return nil
}
