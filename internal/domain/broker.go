package domain

import "time"

// BrokerRequestStatus enumerates broker service request states.
type BrokerRequestStatus string

const (
	BrokerStatusPending    BrokerRequestStatus = "pending"
	BrokerStatusInProgress BrokerRequestStatus = "in_progress"
	BrokerStatusCompleted  BrokerRequestStatus = "completed"
	BrokerStatusCancelled  BrokerRequestStatus = "cancelled"
)

// VehicleSelection is one desired vehicle in a broker-service request.
type VehicleSelection struct {
	Make      string `json:"make"`
	Model     string `json:"model"`
	YearRange string `json:"yearRange"`
}

// BrokerRequest is a paid broker-service request captured from the public
// site. VehicleSelections always holds at least one entry once the input
// has been normalized.
type BrokerRequest struct {
	ID                     string
	FirstName              string
	LastName               string
	Email                  string
	Phone                  string
	VehicleSelections      []VehicleSelection
	MaxBudget              string
	MileageRange           string
	AdditionalRequirements string
	DepositAgreed          string
	Status                 BrokerRequestStatus
	CreatedAt              time.Time
}

// BrokerRequestInput accepts both payload shapes the site has produced over
// time: the current multi-vehicle form sends VehicleSelections, while the
// retired single-vehicle form sent VehicleMake/VehicleModel/YearRange.
type BrokerRequestInput struct {
	FirstName              string             `json:"firstName"`
	LastName               string             `json:"lastName"`
	Email                  string             `json:"email"`
	Phone                  string             `json:"phone"`
	VehicleSelections      []VehicleSelection `json:"vehicleSelections"`
	VehicleMake            string             `json:"vehicleMake"`
	VehicleModel           string             `json:"vehicleModel"`
	YearRange              string             `json:"yearRange"`
	MaxBudget              string             `json:"maxBudget"`
	MileageRange           string             `json:"mileageRange"`
	AdditionalRequirements string             `json:"additionalRequirements"`
	DepositAgreed          string             `json:"depositAgreed"`
}

// Normalize folds a legacy single-vehicle payload into the selections list
// and defaults DepositAgreed. Requests that already carry selections pass
// through untouched apart from the default.
func (in *BrokerRequestInput) Normalize() {
	if len(in.VehicleSelections) == 0 {
		in.VehicleSelections = []VehicleSelection{{
			Make:      in.VehicleMake,
			Model:     in.VehicleModel,
			YearRange: in.YearRange,
		}}
	}
	if in.DepositAgreed == "" {
		in.DepositAgreed = "true"
	}
}

// Valid reports whether the request carries the required contact fields and
// at least one non-empty vehicle selection.
func (in *BrokerRequestInput) Valid() bool {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Phone == "" || in.MaxBudget == "" {
		return false
	}
	for _, sel := range in.VehicleSelections {
		if sel.Make != "" || sel.Model != "" || sel.YearRange != "" {
			return true
		}
	}
	return false
}
