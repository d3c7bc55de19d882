// Package ingest coordinates the vehicle-image pipeline: fetch raw bytes
// from the object store, normalize them, write the result back in place and
// attach the stable path to a vehicle record.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"dealership/internal/domain"
	"dealership/internal/storage"
)

// Normalizer is the transform contract the orchestrator drives. The imaging
// package provides the production implementation.
type Normalizer interface {
	Normalize(data []byte) ([]byte, error)
}

// BatchReport summarizes a reprocessing run. Counts are per image;
// TotalVehicles counts scanned records regardless of how many images each
// carried.
type BatchReport struct {
	ProcessedCount int `json:"processedCount"`
	ErrorCount     int `json:"errorCount"`
	TotalVehicles  int `json:"totalVehicles"`
}

// Ingestor wires the object store, the transform engine and the vehicle
// repository together.
type Ingestor struct {
	store    storage.ObjectStore
	proc     Normalizer
	vehicles domain.VehicleRepository
	bucket   string
	log      zerolog.Logger
}

// New constructs an Ingestor. bucket is the default bucket assumed by the
// fallback path extraction.
func New(store storage.ObjectStore, proc Normalizer, vehicles domain.VehicleRepository, bucket string, log zerolog.Logger) *Ingestor {
	return &Ingestor{store: store, proc: proc, vehicles: vehicles, bucket: bucket, log: log}
}

// ProcessAndReplace downloads the object at ref, normalizes it and
// overwrites the same key with the result, tagging the object as processed.
// It re-derives from whatever bytes are currently stored, so running it on
// an already-normalized image resizes and re-brands that image again; no
// raw copy is kept. Any step failing surfaces as a single wrapped error and
// nothing is retried here.
func (i *Ingestor) ProcessAndReplace(ctx context.Context, ref storage.ObjectRef) error {
	data, _, err := i.store.Download(ctx, ref)
	if err != nil {
		return fmt.Errorf("ingest: download %s/%s: %w", ref.Bucket, ref.Key, err)
	}

	out, err := i.proc.Normalize(data)
	if err != nil {
		return fmt.Errorf("ingest: process %s/%s: %w", ref.Bucket, ref.Key, err)
	}

	meta := map[string]string{
		"processed":    "true",
		"processed-at": time.Now().UTC().Format(time.RFC3339),
	}
	if err := i.store.Upload(ctx, ref, out, "image/jpeg", meta); err != nil {
		return fmt.Errorf("ingest: upload %s/%s: %w", ref.Bucket, ref.Key, err)
	}
	return nil
}

// IngestUpload turns a signed upload URL into a stable image path,
// processes the uploaded object best-effort and, when vehicleID is given,
// appends the path to that vehicle's image list. Processing failures
// degrade to the raw image staying visible instead of blocking the upload;
// only path extraction and the vehicle append can fail the call.
func (i *Ingestor) IngestUpload(ctx context.Context, uploadURL, vehicleID string) (string, error) {
	path, err := storage.NormalizeUploadURL(uploadURL)
	if err != nil {
		fb, ok := storage.FallbackPath(uploadURL, i.bucket)
		if !ok {
			return "", fmt.Errorf("ingest: normalize upload url: %w", err)
		}
		i.log.Warn().Str("url", uploadURL).Str("fallback", fb).Msg("upload url did not normalize, using fallback extraction")
		path = fb
	}

	if ref, err := storage.ResolvePath(path); err != nil {
		i.log.Error().Err(err).Str("path", path).Msg("normalized path did not resolve, image left unprocessed")
	} else if err := i.ProcessAndReplace(ctx, ref); err != nil {
		i.log.Error().Err(err).Str("path", path).Msg("image processing failed, raw upload kept")
	}

	if vehicleID != "" {
		if err := i.vehicles.AppendImage(ctx, vehicleID, path); err != nil {
			return "", fmt.Errorf("ingest: attach image to vehicle %s: %w", vehicleID, err)
		}
	}
	return path, nil
}

// ReprocessAll re-runs ProcessAndReplace over every image referenced by
// every vehicle, e.g. after a watermark change. Paths outside the object
// scheme are skipped; individual failures are logged and counted without
// aborting the batch.
func (i *Ingestor) ReprocessAll(ctx context.Context) (BatchReport, error) {
	var report BatchReport

	vehicles, err := i.vehicles.ListAll(ctx)
	if err != nil {
		return report, fmt.Errorf("ingest: list vehicles: %w", err)
	}
	report.TotalVehicles = len(vehicles)

	for _, v := range vehicles {
		for _, p := range v.Images {
			ref, err := storage.ResolvePath(p)
			if err != nil {
				i.log.Debug().Str("vehicle", v.ID).Str("path", p).Msg("skipping path outside object scheme")
				continue
			}
			if err := i.ProcessAndReplace(ctx, ref); err != nil {
				report.ErrorCount++
				i.log.Error().Err(err).Str("vehicle", v.ID).Str("path", p).Msg("reprocess failed for image")
				continue
			}
			report.ProcessedCount++
		}
	}

	i.log.Info().
		Int("processed", report.ProcessedCount).
		Int("errors", report.ErrorCount).
		Int("vehicles", report.TotalVehicles).
		Msg("image reprocessing completed")
	return report, nil
}
