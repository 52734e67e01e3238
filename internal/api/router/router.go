package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/medbook/doctors-portal/internal/auth"
	"github.com/medbook/doctors-portal/internal/bookings"
	"github.com/medbook/doctors-portal/internal/catalog"
	"github.com/medbook/doctors-portal/internal/doctors"
	httpmiddleware "github.com/medbook/doctors-portal/internal/http/middleware"
	"github.com/medbook/doctors-portal/internal/payments"
	"github.com/medbook/doctors-portal/internal/users"
	"github.com/medbook/doctors-portal/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger          *logging.Logger
	CatalogHandler  *catalog.Handler
	BookingsHandler *bookings.Handler
	UsersHandler    *users.Handler
	DoctorsHandler  *doctors.Handler
	PaymentsHandler *payments.Handler
	AuthHandler     *auth.Handler

	// Issuer verifies bearer tokens; Roles answers admin checks.
	Issuer *auth.Issuer
	Roles  auth.RoleChecker

	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Per-IP rate limiting; disabled when RateLimitRPS is zero.
	RateLimitRPS   float64
	RateLimitBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.RateLimitRPS > 0 {
		r.Use(httpmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}

	verify := auth.Verify(cfg.Issuer)
	requireAdmin := auth.RequireAdmin(cfg.Roles)

	// Public endpoints
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Get("/appointment-options", cfg.CatalogHandler.ListOptions)
	r.Get("/appointment-specialty", cfg.CatalogHandler.ListSpecialties)

	r.Get("/jwt", cfg.AuthHandler.IssueToken)

	r.Route("/bookings", func(b chi.Router) {
		b.Post("/", cfg.BookingsHandler.Create)
		b.Get("/{id}", cfg.BookingsHandler.GetByID)
		// The self-only gate runs before the handler; a caller asking for
		// another patient's email never reaches the store.
		b.With(verify, auth.RequireSelf("email")).Get("/", cfg.BookingsHandler.ListByEmail)
	})

	r.Route("/users", func(u chi.Router) {
		u.Post("/", cfg.UsersHandler.Create)
		u.Get("/", cfg.UsersHandler.List)
		u.Get("/admin/{email}", cfg.UsersHandler.CheckAdmin)
		u.With(verify, requireAdmin).Put("/admin/{id}", cfg.UsersHandler.GrantAdmin)
	})

	r.Route("/doctors", func(d chi.Router) {
		d.Get("/", cfg.DoctorsHandler.List)
		d.With(verify, requireAdmin).Post("/", cfg.DoctorsHandler.Create)
		d.With(verify, requireAdmin).Delete("/{id}", cfg.DoctorsHandler.Delete)
	})

	r.Post("/create-payment-intent", cfg.PaymentsHandler.CreateIntent)
	r.Post("/payments", cfg.PaymentsHandler.RecordPayment)

	return r
}
