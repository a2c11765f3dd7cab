package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/mwestby/choreboard/internal/database"
	"github.com/mwestby/choreboard/internal/email"
	"github.com/mwestby/choreboard/internal/logging"
	"github.com/mwestby/choreboard/internal/server"
)

func main() {
	// Missing .env is fine; systemd and docker set the environment directly.
	_ = godotenv.Load()

	logger := logging.Setup(os.Getenv("CHOREBOARD_LOG_LEVEL"))

	port := os.Getenv("CHOREBOARD_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("CHOREBOARD_DB_PATH")
	if dbPath == "" {
		dbPath = "choreboard.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		logger.Error("failed to open database", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	baseURL := os.Getenv("CHOREBOARD_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + port
	}
	mailer := email.NewClient(
		os.Getenv("CHOREBOARD_POSTMARK_TOKEN"),
		os.Getenv("CHOREBOARD_FROM_EMAIL"),
		baseURL,
	)
	if !mailer.Configured() {
		logger.Info("email not configured, password reset tokens will be logged instead")
	}

	srv := server.New(db, mailer, server.Config{
		AdminEmail: os.Getenv("CHOREBOARD_ADMIN_EMAIL"),
	}, logger)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", func() {
		if n, err := srv.SessionStore().DeleteExpired(); err != nil {
			logger.Error("session cleanup failed", "error", err)
		} else if n > 0 {
			logger.Info("expired sessions removed", "count", n)
		}
		if _, err := srv.PasswordResetStore().DeleteExpired(); err != nil {
			logger.Error("password reset cleanup failed", "error", err)
		}
		srv.RateLimiter().Cleanup()
	}); err != nil {
		logger.Error("failed to schedule cleanup job", "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Choreboard running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
