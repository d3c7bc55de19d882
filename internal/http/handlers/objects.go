package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"dealership/internal/domain"
	"dealership/internal/storage"
)

// ServeObject streams a stored image by its stable application path.
func (a *App) ServeObject(w http.ResponseWriter, r *http.Request) {
	ref, err := storage.ResolvePath(r.URL.Path)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "object not found")
		return
	}
	data, contentType, err := a.Store.Download(r.Context(), ref)
	if errors.Is(err, storage.ErrObjectNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "object not found")
		return
	}
	if err != nil {
		a.Log.Error().Err(err).Str("bucket", ref.Bucket).Str("key", ref.Key).Msg("object download failed")
		a.error(w, http.StatusBadGateway, "storage_unavailable", "failed to load object")
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type uploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	Path      string `json:"path"`
}

// CreateUploadURL issues a presigned PUT URL for a new image object. The
// returned path is where the object will be served from once uploaded and
// attached. Admin only.
func (a *App) CreateUploadURL(w http.ResponseWriter, r *http.Request) {
	key := "uploads/" + uuid.NewString()
	u, err := a.Store.PresignPut(r.Context(), key, a.UploadURLTTL)
	if errors.Is(err, storage.ErrPresignUnsupported) {
		a.error(w, http.StatusNotImplemented, "unsupported", "storage driver cannot issue upload urls")
		return
	}
	if err != nil {
		a.Log.Error().Err(err).Msg("presign upload failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create upload url")
		return
	}
	a.json(w, http.StatusOK, uploadURLResponse{
		UploadURL: u.String(),
		Path:      storage.PathFor(storage.ObjectRef{Bucket: a.Bucket, Key: key}),
	})
}

type attachImageRequest struct {
	ImageURL  string `json:"imageUrl"`
	VehicleID string `json:"vehicleId"`
}

type attachImageResponse struct {
	Path string `json:"path"`
}

// AttachVehicleImage normalizes an uploaded image URL into a stable path,
// processes the image best-effort and appends the path to the vehicle's
// image list. Admin only.
func (a *App) AttachVehicleImage(w http.ResponseWriter, r *http.Request) {
	var req attachImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.ImageURL == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "imageUrl is required")
		return
	}

	path, err := a.Ingest.IngestUpload(r.Context(), req.ImageURL, req.VehicleID)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "vehicle not found")
		return
	}
	if errors.Is(err, storage.ErrInvalidPath) {
		a.error(w, http.StatusBadRequest, "bad_request", "imageUrl does not reference a stored object")
		return
	}
	if err != nil {
		a.Log.Error().Err(err).Msg("attach vehicle image failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to attach image")
		return
	}
	a.json(w, http.StatusOK, attachImageResponse{Path: path})
}

// ReprocessImages re-runs normalization over every stored vehicle image and
// reports per-image counts. Admin only.
func (a *App) ReprocessImages(w http.ResponseWriter, r *http.Request) {
	report, err := a.Ingest.ReprocessAll(r.Context())
	if err != nil {
		a.Log.Error().Err(err).Msg("image reprocessing failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to reprocess images")
		return
	}
	a.json(w, http.StatusOK, report)
}
