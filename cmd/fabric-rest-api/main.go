// Package main is the entry point for the fabric-rest-api application.
// It exposes the cryptographic façade's digest, MAC and encryption
// operations over a versioned JSON API.
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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	v1 "github.com/servercurio/fabric-sub000/internal/api/rest/v1"
	"github.com/servercurio/fabric-sub000/internal/app"
	"github.com/servercurio/fabric-sub000/internal/pkg/config"
	"github.com/servercurio/fabric-sub000/internal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/rest-app.yaml"
	}

	settings, err := config.InitializeFacadeConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	if err := logger.InitLogger(&settings.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	facade, err := app.NewCryptography(settings, log)
	if err != nil {
		return fmt.Errorf("failed to initialize cryptography facade: %w", err)
	}

	return startServerWithGracefulShutdown(settings, facade, log)
}

func startServerWithGracefulShutdown(settings *config.FacadeSettings, facade *app.Cryptography, log logger.Logger) error {
	router := gin.Default()
	router.Use(cors.Default())
	v1.SetupRoutes(router, facade, facade, facade)

	server := &http.Server{
		Addr:              settings.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("REST API listening on ", settings.Address)
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-quit:
		log.Info("received signal ", sig, ", shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	if err := facade.Close(); err != nil {
		return fmt.Errorf("failed to close cryptography facade: %w", err)
	}
	return nil
}
