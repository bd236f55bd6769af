package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"textile/cmd"
	httpin "textile/internal/adapters/in/http"
	"textile/internal/adapters/out/objectstore"
	"textile/internal/adapters/out/postgres"
	"textile/internal/core/domain/model/order"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	configs := getConfigs()
	logger := newLogger(configs.LogLevel)

	table := order.DefaultTransitionTable()
	report, err := table.Validate()
	if err != nil {
		log.Fatalf("invalid transition table: %v", err)
	}
	for _, status := range report.Unreachable {
		logger.Info("Reserved status is unreachable", "status", status.String())
	}
	for _, status := range report.Terminal {
		logger.Info("Terminal status", "status", status.String())
	}

	gormDB, err := postgres.Open(postgres.DSN(
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	))
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	store, err := objectstore.NewSupabaseStore(configs.StorageURL, configs.StorageKey, configs.StorageBucket, logger)
	if err != nil {
		log.Fatalf("failed to configure object storage: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, table, store, logger)

	if configs.LedgerIntegritySchedule != "" {
		jobManager := app.CreateJobManager()
		if err := jobManager.StartAll(); err != nil {
			log.Fatalf("%v", err)
		}
		defer jobManager.StopAll()
	}

	startWebServer(app, configs, logger)
}

func getConfigs() cmd.Config {
	// Container deployments pass variables directly, so a missing .env is fine.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config := cmd.Config{
		HTTPPort:                os.Getenv("HTTP_PORT"),
		DBHost:                  os.Getenv("DB_HOST"),
		DBPort:                  os.Getenv("DB_PORT"),
		DBUser:                  os.Getenv("DB_USER"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBName:                  os.Getenv("DB_NAME"),
		DBSslMode:               os.Getenv("DB_SSLMODE"),
		LogLevel:                os.Getenv("LOG_LEVEL"),
		JWTSecret:               os.Getenv("JWT_SECRET"),
		StorageURL:              os.Getenv("STORAGE_URL"),
		StorageKey:              os.Getenv("STORAGE_KEY"),
		StorageBucket:           os.Getenv("STORAGE_BUCKET"),
		LedgerIntegritySchedule: os.Getenv("LEDGER_INTEGRITY_SCHEDULE"),
	}
	if config.HTTPPort == "" {
		config.HTTPPort = "8080"
	}
	return config
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func startWebServer(app cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) {
	e, err := httpin.NewRouter(app.CreateHTTPServer(), httpin.RouterConfig{
		JWTSecret: configs.JWTSecret,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("failed to build router: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
