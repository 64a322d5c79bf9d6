package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/Vikas07-unfiltered/fit-lynk-v2/docs"

	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/config"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/db"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/logger"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/notification"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/server"
)

// @title FitLynk API
// @version 1.0
// @description Gym membership ledger, attendance and analytics API.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {

	logger.Init()
	logger.Info("Starting FitLynk application")
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	sender := notification.NewTwilioSender(
		cfg.TwilioAccountSID,
		cfg.TwilioAuthToken,
		cfg.TwilioPhoneNumber,
		cfg.TwilioWhatsAppNum,
		cfg.TwilioAPIBaseURL,
	)
	smsService := notification.New(cfg.RedisAddr, sender)
	defer smsService.Close()
	logger.Info("SMS service initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go smsService.Start(ctx)

	srv := server.New(database, cfg, smsService)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
