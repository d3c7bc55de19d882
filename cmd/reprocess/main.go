package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/joho/godotenv"

	"dealership/internal/adapter/repo"
	"dealership/internal/imaging"
	"dealership/internal/infra"
	"dealership/internal/ingest"
	"dealership/internal/storage"
)

// reprocess re-runs image normalization over every vehicle image, e.g.
// after swapping the watermark asset. It prints the batch report as JSON.
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

	var store storage.ObjectStore
	if cfg.StorageDriver == infra.StorageDriverFilesystem {
		store, err = storage.NewFileStore(cfg.StorageBasePath, cfg.StorageBucket)
	} else {
		store, err = storage.NewMinioStore(ctx, storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			UseSSL:    cfg.MinioUseSSL,
			Bucket:    cfg.StorageBucket,
		})
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init storage")
	}

	processor := imaging.NewProcessor(cfg.WatermarkPath, logger)
	vehicles := repo.NewVehicleRepository(dbpool)
	ingestor := ingest.New(store, processor, vehicles, cfg.StorageBucket, logger)

	report, err := ingestor.ReprocessAll(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("reprocessing failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(report)
}
