package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"dealership/internal/domain"
)

type brokerRequestDTO struct {
	ID                     string                    `json:"id"`
	FirstName              string                    `json:"firstName"`
	LastName               string                    `json:"lastName"`
	Email                  string                    `json:"email"`
	Phone                  string                    `json:"phone"`
	VehicleSelections      []domain.VehicleSelection `json:"vehicleSelections"`
	MaxBudget              string                    `json:"maxBudget"`
	MileageRange           string                    `json:"mileageRange"`
	AdditionalRequirements string                    `json:"additionalRequirements"`
	DepositAgreed          string                    `json:"depositAgreed"`
	Status                 string                    `json:"status"`
	CreatedAt              time.Time                 `json:"createdAt"`
}

func toBrokerRequestDTO(b *domain.BrokerRequest) brokerRequestDTO {
	return brokerRequestDTO{
		ID:                     b.ID,
		FirstName:              b.FirstName,
		LastName:               b.LastName,
		Email:                  b.Email,
		Phone:                  b.Phone,
		VehicleSelections:      b.VehicleSelections,
		MaxBudget:              b.MaxBudget,
		MileageRange:           b.MileageRange,
		AdditionalRequirements: b.AdditionalRequirements,
		DepositAgreed:          b.DepositAgreed,
		Status:                 string(b.Status),
		CreatedAt:              b.CreatedAt,
	}
}

// CreateBrokerRequest accepts a broker-service request from the public
// site. Both the current multi-vehicle payload and the retired
// single-vehicle payload are accepted.
func (a *App) CreateBrokerRequest(w http.ResponseWriter, r *http.Request) {
	var in domain.BrokerRequestInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	in.Normalize()
	if !in.Valid() {
		a.error(w, http.StatusBadRequest, "bad_request", "name, contact details, budget and at least one vehicle are required")
		return
	}
	b, err := a.BrokerRequests.Create(r.Context(), &in)
	if err != nil {
		a.Log.Error().Err(err).Msg("create broker request failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save broker request")
		return
	}
	a.json(w, http.StatusCreated, toBrokerRequestDTO(b))
}

// ListBrokerRequests returns all broker requests for the dashboard. Admin only.
func (a *App) ListBrokerRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := a.BrokerRequests.ListAll(r.Context())
	if err != nil {
		a.Log.Error().Err(err).Msg("list broker requests failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load broker requests")
		return
	}
	items := make([]brokerRequestDTO, 0, len(requests))
	for i := range requests {
		items = append(items, toBrokerRequestDTO(&requests[i]))
	}
	a.json(w, http.StatusOK, items)
}
