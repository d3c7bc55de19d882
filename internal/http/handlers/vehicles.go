package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dealership/internal/domain"
)

type vehicleDTO struct {
	ID           string    `json:"id"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	Price        string    `json:"price"`
	PriceDisplay string    `json:"priceDisplay"`
	Mileage      int       `json:"mileage"`
	Transmission string    `json:"transmission"`
	Drivetrain   string    `json:"drivetrain"`
	Features     string    `json:"features"`
	Description  string    `json:"description"`
	Images       []string  `json:"images"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toVehicleDTO(v *domain.Vehicle) vehicleDTO {
	images := v.Images
	if images == nil {
		images = []string{}
	}
	return vehicleDTO{
		ID:           v.ID,
		Make:         v.Make,
		Model:        v.Model,
		Year:         v.Year,
		Price:        v.Price,
		PriceDisplay: v.PriceDisplay(),
		Mileage:      v.Mileage,
		Transmission: v.Transmission,
		Drivetrain:   v.Drivetrain,
		Features:     v.Features,
		Description:  v.Description,
		Images:       images,
		Status:       string(v.Status),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

// ListVehicles returns the full inventory for the storefront.
func (a *App) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := a.Vehicles.ListAll(r.Context())
	if err != nil {
		a.Log.Error().Err(err).Msg("list vehicles failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load vehicles")
		return
	}
	items := make([]vehicleDTO, 0, len(vehicles))
	for i := range vehicles {
		items = append(items, toVehicleDTO(&vehicles[i]))
	}
	a.json(w, http.StatusOK, items)
}

// GetVehicle returns a single listing.
func (a *App) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	v, err := a.Vehicles.GetByID(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "vehicle not found")
		return
	}
	if err != nil {
		a.Log.Error().Err(err).Str("vehicle", id).Msg("get vehicle failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load vehicle")
		return
	}
	a.json(w, http.StatusOK, toVehicleDTO(v))
}

// CreateVehicle adds a listing to inventory. Admin only.
func (a *App) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var in domain.VehicleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if in.Make == nil || *in.Make == "" || in.Model == nil || *in.Model == "" || in.Year == nil || in.Price == nil || *in.Price == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "make, model, year and price are required")
		return
	}
	v, err := a.Vehicles.Create(r.Context(), &in)
	if err != nil {
		a.Log.Error().Err(err).Msg("create vehicle failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create vehicle")
		return
	}
	a.json(w, http.StatusCreated, toVehicleDTO(v))
}

// UpdateVehicle applies a partial update to a listing. Admin only.
func (a *App) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in domain.VehicleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	v, err := a.Vehicles.Update(r.Context(), id, &in)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "vehicle not found")
		return
	}
	if err != nil {
		a.Log.Error().Err(err).Str("vehicle", id).Msg("update vehicle failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update vehicle")
		return
	}
	a.json(w, http.StatusOK, toVehicleDTO(v))
}

// DeleteVehicle removes a listing. Admin only.
func (a *App) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := a.Vehicles.Delete(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "vehicle not found")
		return
	}
	if err != nil {
		a.Log.Error().Err(err).Str("vehicle", id).Msg("delete vehicle failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete vehicle")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": "deleted"})
}
