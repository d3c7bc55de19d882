package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dealership/internal/domain"
)

type contactInquiryDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type vehicleInquiryDTO struct {
	ID        string    `json:"id"`
	VehicleID string    `json:"vehicleId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateContactInquiry saves a contact-form submission.
func (a *App) CreateContactInquiry(w http.ResponseWriter, r *http.Request) {
	var in domain.ContactInquiryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if !in.Valid() {
		a.error(w, http.StatusBadRequest, "bad_request", "name, email, subject and message are required")
		return
	}
	q, err := a.ContactInquiries.Create(r.Context(), &in)
	if err != nil {
		a.Log.Error().Err(err).Msg("create contact inquiry failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save inquiry")
		return
	}
	a.json(w, http.StatusCreated, contactInquiryDTO{
		ID: q.ID, Name: q.Name, Email: q.Email, Subject: q.Subject,
		Message: q.Message, Status: string(q.Status), CreatedAt: q.CreatedAt,
	})
}

// ListContactInquiries returns all contact leads. Admin only.
func (a *App) ListContactInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := a.ContactInquiries.ListAll(r.Context())
	if err != nil {
		a.Log.Error().Err(err).Msg("list contact inquiries failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load inquiries")
		return
	}
	items := make([]contactInquiryDTO, 0, len(inquiries))
	for _, q := range inquiries {
		items = append(items, contactInquiryDTO{
			ID: q.ID, Name: q.Name, Email: q.Email, Subject: q.Subject,
			Message: q.Message, Status: string(q.Status), CreatedAt: q.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, items)
}

// DeleteContactInquiry removes a contact lead. Admin only.
func (a *App) DeleteContactInquiry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := a.ContactInquiries.Delete(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "inquiry not found")
		return
	}
	if err != nil {
		a.Log.Error().Err(err).Str("inquiry", id).Msg("delete contact inquiry failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete inquiry")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// CreateVehicleInquiry saves a lead about a specific listing. The listing
// must exist.
func (a *App) CreateVehicleInquiry(w http.ResponseWriter, r *http.Request) {
	var in domain.VehicleInquiryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if !in.Valid() {
		a.error(w, http.StatusBadRequest, "bad_request", "vehicle, name, email and phone are required")
		return
	}
	if _, err := a.Vehicles.GetByID(r.Context(), in.VehicleID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "vehicle not found")
			return
		}
		a.Log.Error().Err(err).Str("vehicle", in.VehicleID).Msg("vehicle lookup failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save inquiry")
		return
	}
	q, err := a.VehicleInquiries.Create(r.Context(), &in)
	if err != nil {
		a.Log.Error().Err(err).Msg("create vehicle inquiry failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save inquiry")
		return
	}
	a.json(w, http.StatusCreated, vehicleInquiryDTO{
		ID: q.ID, VehicleID: q.VehicleID, FirstName: q.FirstName, LastName: q.LastName,
		Email: q.Email, Phone: q.Phone, Message: q.Message, Status: string(q.Status), CreatedAt: q.CreatedAt,
	})
}

// ListVehicleInquiries returns all listing leads. Admin only.
func (a *App) ListVehicleInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := a.VehicleInquiries.ListAll(r.Context())
	if err != nil {
		a.Log.Error().Err(err).Msg("list vehicle inquiries failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load inquiries")
		return
	}
	items := make([]vehicleInquiryDTO, 0, len(inquiries))
	for _, q := range inquiries {
		items = append(items, vehicleInquiryDTO{
			ID: q.ID, VehicleID: q.VehicleID, FirstName: q.FirstName, LastName: q.LastName,
			Email: q.Email, Phone: q.Phone, Message: q.Message, Status: string(q.Status), CreatedAt: q.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, items)
}

// DeleteVehicleInquiry removes a listing lead. Admin only.
func (a *App) DeleteVehicleInquiry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := a.VehicleInquiries.Delete(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "inquiry not found")
		return
	}
	if err != nil {
		a.Log.Error().Err(err).Str("inquiry", id).Msg("delete vehicle inquiry failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete inquiry")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": "deleted"})
}
