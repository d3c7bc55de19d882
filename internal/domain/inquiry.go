package domain

import "time"

// InquiryStatus enumerates lead states shared by both inquiry kinds.
type InquiryStatus string

const (
	InquiryStatusNew       InquiryStatus = "new"
	InquiryStatusResponded InquiryStatus = "responded"
	InquiryStatusClosed    InquiryStatus = "closed"
)

// ContactInquiry is a message from the general contact form.
type ContactInquiry struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Message   string
	Status    InquiryStatus
	CreatedAt time.Time
}

// ContactInquiryInput carries the writable contact-form fields.
type ContactInquiryInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Valid reports whether all required fields are present.
func (in *ContactInquiryInput) Valid() bool {
	return in.Name != "" && in.Email != "" && in.Subject != "" && in.Message != ""
}

// VehicleInquiry is a lead about a specific listing.
type VehicleInquiry struct {
	ID        string
	VehicleID string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Message   string
	Status    InquiryStatus
	CreatedAt time.Time
}

// VehicleInquiryInput carries the writable vehicle-inquiry fields.
type VehicleInquiryInput struct {
	VehicleID string `json:"vehicleId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
}

// Valid reports whether all required fields are present.
func (in *VehicleInquiryInput) Valid() bool {
	return in.VehicleID != "" && in.FirstName != "" && in.LastName != "" && in.Email != "" && in.Phone != ""
}
