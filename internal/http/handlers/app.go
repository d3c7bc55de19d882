package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"dealership/internal/domain"
	"dealership/internal/infra/geoip"
	"dealership/internal/ingest"
	"dealership/internal/storage"
)

// App bundles the dependencies shared by all HTTP handlers. Fields are
// interfaces so tests can substitute fakes.
type App struct {
	Log zerolog.Logger

	Vehicles         domain.VehicleRepository
	BrokerRequests   domain.BrokerRequestRepository
	ContactInquiries domain.ContactInquiryRepository
	VehicleInquiries domain.VehicleInquiryRepository
	Marketing        domain.MarketingSourceRepository
	Admins           domain.AdminUserRepository

	Store  storage.ObjectStore
	Ingest *ingest.Ingestor
	Geo    geoip.CountryResolver

	SessionSecret string
	SessionTTL    time.Duration
	SecureCookies bool

	Bucket       string
	UploadURLTTL time.Duration

	StripeKey string
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"error": code, "message": message})
}

// Health reports service liveness.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
