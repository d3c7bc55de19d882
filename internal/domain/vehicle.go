package domain

import (
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// VehicleStatus enumerates the lifecycle of an inventory listing.
type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "available"
	VehicleStatusPending   VehicleStatus = "pending"
	VehicleStatusSold      VehicleStatus = "sold"
)

// Vehicle represents a single inventory listing. Images holds the ordered
// list of normalized object paths (see the storage package for the
// addressing scheme).
type Vehicle struct {
	ID           string
	Make         string
	Model        string
	Year         int
	Price        string
	Mileage      int
	Transmission string
	Drivetrain   string
	Features     string
	Description  string
	Images       []string
	Status       VehicleStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// VehicleInput carries the writable fields for create/update operations.
// Pointer fields distinguish "absent" from zero values on partial updates.
type VehicleInput struct {
	Make         *string  `json:"make"`
	Model        *string  `json:"model"`
	Year         *int     `json:"year"`
	Price        *string  `json:"price"`
	Mileage      *int     `json:"mileage"`
	Transmission *string  `json:"transmission"`
	Drivetrain   *string  `json:"drivetrain"`
	Features     *string  `json:"features"`
	Description  *string  `json:"description"`
	Images       []string `json:"images"`
	Status       *string  `json:"status"`
}

var pricePrinter = message.NewPrinter(language.AmericanEnglish)

// PriceDisplay renders the stored numeric price as a US dollar amount for
// the storefront, e.g. "$24,500.00". Invalid stored values render empty.
func (v *Vehicle) PriceDisplay() string {
	amount, err := strconv.ParseFloat(v.Price, 64)
	if err != nil {
		return ""
	}
	return pricePrinter.Sprintf("$%.2f", amount)
}
