package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"dealership/internal/http/handlers"
	"dealership/internal/middleware"
)

// RouterConfig carries the knobs the router wires into its middleware.
type RouterConfig struct {
	RateLimitPerMin int
	AllowedOrigins  []string
}

// NewRouter assembles the HTTP surface: public storefront endpoints,
// rate-limited lead forms and the session-guarded admin API.
func NewRouter(app *handlers.App, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Log),
		middleware.CORS(cfg.AllowedOrigins),
	)

	limited := middleware.RateLimit(cfg.RateLimitPerMin, time.Minute)

	r.Get("/healthz", app.Health)

	// Stored images by stable path.
	r.Get("/objects/{bucket}/*", app.ServeObject)

	r.Route("/api", func(r chi.Router) {
		// Public storefront.
		r.Get("/vehicles", app.ListVehicles)
		r.Get("/vehicles/{id}", app.GetVehicle)

		// Public lead forms, rate limited per client IP.
		r.Group(func(r chi.Router) {
			r.Use(limited)
			r.Post("/broker-requests", app.CreateBrokerRequest)
			r.Post("/contact-inquiries", app.CreateContactInquiry)
			r.Post("/vehicle-inquiries", app.CreateVehicleInquiry)
			r.Post("/marketing-sources", app.CaptureMarketingSource)
			r.Post("/payments/deposit-intent", app.CreateDepositIntent)
		})

		r.Post("/admin/login", app.Login)

		// Dashboard, behind the admin session.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(app.SessionSecret))

			r.Post("/admin/logout", app.Logout)
			r.Get("/admin/me", app.Me)

			r.Post("/vehicles", app.CreateVehicle)
			r.Put("/vehicles/{id}", app.UpdateVehicle)
			r.Delete("/vehicles/{id}", app.DeleteVehicle)

			r.Get("/admin/broker-requests", app.ListBrokerRequests)
			r.Get("/admin/contact-inquiries", app.ListContactInquiries)
			r.Delete("/admin/contact-inquiries/{id}", app.DeleteContactInquiry)
			r.Get("/admin/vehicle-inquiries", app.ListVehicleInquiries)
			r.Delete("/admin/vehicle-inquiries/{id}", app.DeleteVehicleInquiry)

			r.Get("/admin/marketing-sources", app.ListMarketingSources)
			r.Get("/admin/marketing-sources/stats", app.MarketingSourceStats)

			r.Post("/objects/upload", app.CreateUploadURL)
			r.Put("/vehicle-images", app.AttachVehicleImage)
			r.Post("/admin/process-images", app.ReprocessImages)
		})
	})

	return r
}
