package commands

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-api/config"
	"storefront-api/database"
	"storefront-api/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL, database.Up); err != nil {
			return err
		}
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return err
	}

	seedCommand := cfg.SeedCommand
	if seedCommand == "" {
		seedCommand, err = selfSeedCommand()
		if err != nil {
			log.WithError(err).Warn("no seed command available")
		}
	}

	gin.SetMode(config.GetEnv("GIN_MODE", gin.ReleaseMode))
	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	stopRoutes := routes.SetupRoutes(r, db, routes.Options{
		SeedCommand:     seedCommand,
		SeedTimeout:     cfg.SeedTimeout,
		GuestOrderLimit: cfg.GuestOrderLimit,
	})
	defer stopRoutes()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}
	log.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server forced to shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.WithError(err).Warn("error closing database connection")
		} else {
			log.Info("database connection closed")
		}
	}

	log.Info("server exited gracefully")
	return nil
}

// selfSeedCommand runs this binary's own seed subcommand.
func selfSeedCommand() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, "locate executable")
	}
	return exe + " seed", nil
}
