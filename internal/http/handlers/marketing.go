package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"dealership/internal/domain"
	"dealership/internal/middleware"
)

type captureSourceRequest struct {
	Source string `json:"source"`
}

type marketingSourceDTO struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"createdAt"`
}

// CaptureMarketingSource records a "how did you hear about us" event. The
// client address and user agent are captured server-side; country is
// resolved from the address when a GeoIP database is configured.
func (a *App) CaptureMarketingSource(w http.ResponseWriter, r *http.Request) {
	var req captureSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Source == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "source is required")
		return
	}

	src := domain.MarketingSource{
		Source:    req.Source,
		IPAddress: middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
	if a.Geo != nil {
		country, err := a.Geo.CountryCode(src.IPAddress)
		if err != nil {
			a.Log.Debug().Err(err).Str("ip", src.IPAddress).Msg("country lookup failed")
		} else {
			src.Country = country
		}
	}

	saved, err := a.Marketing.Create(r.Context(), &src)
	if err != nil {
		a.Log.Error().Err(err).Msg("save marketing source failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save source")
		return
	}
	a.json(w, http.StatusCreated, marketingSourceDTO{
		ID: saved.ID, Source: saved.Source, IPAddress: saved.IPAddress,
		UserAgent: saved.UserAgent, Country: saved.Country, CreatedAt: saved.CreatedAt,
	})
}

// ListMarketingSources returns raw attribution events. Admin only.
func (a *App) ListMarketingSources(w http.ResponseWriter, r *http.Request) {
	sources, err := a.Marketing.ListAll(r.Context())
	if err != nil {
		a.Log.Error().Err(err).Msg("list marketing sources failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load sources")
		return
	}
	items := make([]marketingSourceDTO, 0, len(sources))
	for _, s := range sources {
		items = append(items, marketingSourceDTO{
			ID: s.ID, Source: s.Source, IPAddress: s.IPAddress,
			UserAgent: s.UserAgent, Country: s.Country, CreatedAt: s.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, items)
}

// MarketingSourceStats returns the per-source breakdown. Admin only.
func (a *App) MarketingSourceStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.Marketing.Stats(r.Context())
	if err != nil {
		a.Log.Error().Err(err).Msg("marketing stats failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	if stats == nil {
		stats = []domain.SourceStat{}
	}
	a.json(w, http.StatusOK, stats)
}
