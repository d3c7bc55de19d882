package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v76"

	"dealership/internal/adapter/repo"
	"dealership/internal/http/handlers"
	"dealership/internal/http/httpapi"
	"dealership/internal/imaging"
	"dealership/internal/infra"
	"dealership/internal/infra/geoip"
	"dealership/internal/ingest"
	"dealership/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	if err := infra.RunMigrations(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	store := newObjectStore(ctx, cfg, logger)
	processor := imaging.NewProcessor(cfg.WatermarkPath, logger)

	vehicles := repo.NewVehicleRepository(dbpool)
	admins := repo.NewAdminUserRepository(dbpool)

	ingestor := ingest.New(store, processor, vehicles, cfg.StorageBucket, logger)

	if cfg.StripeSecretKey != "" {
		stripe.Key = cfg.StripeSecretKey
	}

	app := &handlers.App{
		Log:              logger,
		Vehicles:         vehicles,
		BrokerRequests:   repo.NewBrokerRequestRepository(dbpool),
		ContactInquiries: repo.NewContactInquiryRepository(dbpool),
		VehicleInquiries: repo.NewVehicleInquiryRepository(dbpool),
		Marketing:        repo.NewMarketingSourceRepository(dbpool),
		Admins:           admins,
		Store:            store,
		Ingest:           ingestor,
		SessionSecret:    cfg.SessionSecret,
		SessionTTL:       cfg.SessionTTL,
		SecureCookies:    cfg.AppEnv != "development",
		Bucket:           cfg.StorageBucket,
		UploadURLTTL:     cfg.UploadURLTTL,
		StripeKey:        cfg.StripeSecretKey,
	}

	if resolver, err := geoip.NewResolver(cfg.GeoIPDBPath); err != nil {
		logger.Warn().Err(err).Msg("geoip database unavailable, attribution will not record countries")
	} else if resolver != nil {
		defer resolver.Close()
		app.Geo = resolver
	}

	if err := handlers.EnsureDefaultAdmin(ctx, admins, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to bootstrap admin account")
	}

	router := httpapi.NewRouter(app, httpapi.RouterConfig{
		RateLimitPerMin: cfg.RateLimitPerMin,
		AllowedOrigins:  cfg.AllowedOrigins,
	})
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
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

func newObjectStore(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) storage.ObjectStore {
	switch cfg.StorageDriver {
	case infra.StorageDriverFilesystem:
		store, err := storage.NewFileStore(cfg.StorageBasePath, cfg.StorageBucket)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init filesystem storage")
		}
		return store
	default:
		store, err := storage.NewMinioStore(ctx, storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			UseSSL:    cfg.MinioUseSSL,
			Bucket:    cfg.StorageBucket,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init minio storage")
		}
		return store
	}
}
