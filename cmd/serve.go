package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	config "flowtime-logger.com/flowtime-logger/internal/configs"
	httpapi "flowtime-logger.com/flowtime-logger/internal/http"
	"flowtime-logger.com/flowtime-logger/internal/ledger"
	repository "flowtime-logger.com/flowtime-logger/internal/repositories"
	"flowtime-logger.com/flowtime-logger/internal/services"
	"flowtime-logger.com/flowtime-logger/internal/status"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task lifecycle HTTP API backed by SQLite and the CSV ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			logrus.Info(".env file not found, using environment variables")
		}

		cfg := config.Load()

		database := config.New(cfg.DatabaseDSN)
		taskRepo := repository.NewTaskRepository(database)

		ledgerWriter, err := ledger.NewWriter(cfg.LedgerDir)
		if err != nil {
			return err
		}

		var publisher services.StatusPublisher
		if cfg.RedisAddr != "" {
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
			publisher = status.NewRedisPublisher(redisClient, cfg.RedisStatusKey)
			logrus.WithField("key", cfg.RedisStatusKey).Info("publishing task status to redis")
		}

		sessions := services.NewSessionService(taskRepo, ledgerWriter, publisher)

		e := echo.New()
		e.HideBanner = true

		handler := httpapi.NewHandler(sessions)
		httpapi.Register(e, handler, cfg.RateLimit)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			logrus.WithField("addr", cfg.AppURL).Info("HTTP server listening")
			if err := e.Start(cfg.AppURL); err != nil {
				logrus.WithError(err).Info("server stopped")
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)

		logrus.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
