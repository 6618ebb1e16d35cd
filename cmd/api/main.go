package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"plastictrack/internal/adapter/repo"
	"plastictrack/internal/detect"
	"plastictrack/internal/domain"
	"plastictrack/internal/http/handlers"
	"plastictrack/internal/http/httpapi"
	"plastictrack/internal/infra"
	"plastictrack/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	// Ledger: Postgres when a DSN is configured, in-memory otherwise.
	var ledger domain.UsageLedger
	if cfg.DatabaseURL != "" {
		dbpool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer dbpool.Close()
		if err := infra.EnsureSchema(ctx, dbpool); err != nil {
			logger.Fatal().Err(err).Msg("failed to ensure usage schema")
		}
		ledger = repo.NewUsageRepository(dbpool)
	} else {
		logger.Warn().Msg("DATABASE_URL not set, using in-memory ledger; counts are lost on restart")
		ledger = repo.NewUsageRepositoryMem()
	}

	store, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init upload store")
	}

	// Resolve the detector state once; handlers only see the injected result.
	detector := detect.NewYOLOClient(cfg.DetectorURL, cfg.DetectorTimeout, cfg.DetectorImageSize, cfg.DetectorMinConfidence)
	status := detector.Probe(ctx)
	if status.Ready() {
		logger.Info().Str("url", cfg.DetectorURL).Msg("detector ready")
	} else {
		logger.Warn().
			Bool("available", status.Available).
			Bool("loaded", status.Loaded).
			Msg("detector not ready, uploads will be stored without detection")
	}

	app := &handlers.App{
		Ledger:         ledger,
		Store:          store,
		Detector:       detector,
		DetectorStatus: status,
		Logger:         logger,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}

	router := httpapi.NewRouter(app, logger, cfg.CORSAllowedOrigins)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
