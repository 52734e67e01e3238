package catalog

import (
	"net/http"

	"github.com/medbook/doctors-portal/internal/http/respond"
	"github.com/medbook/doctors-portal/internal/observability/metrics"
	"github.com/medbook/doctors-portal/pkg/logging"
)

// Handler exposes the appointment option catalog over HTTP.
type Handler struct {
	availability *AvailabilityService
	metrics      *metrics.BookingMetrics
	logger       *logging.Logger
}

// NewHandler creates a catalog HTTP handler.
func NewHandler(availability *AvailabilityService, m *metrics.BookingMetrics, logger *logging.Logger) *Handler {
	if availability == nil {
		panic("catalog: availability service required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{availability: availability, metrics: m, logger: logger}
}

// ListOptions handles GET /appointment-options?date=.
func (h *Handler) ListOptions(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	options, err := h.availability.OptionsForDate(r.Context(), date)
	if err != nil {
		respond.Internal(w, h.logger, "catalog.list_options", err)
		return
	}

	h.metrics.ObserveAvailability(date != "")
	respond.Success(w, http.StatusOK, "appointmentOptions", options)
}

// ListSpecialties handles GET /appointment-specialty.
func (h *Handler) ListSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.availability.Specialties(r.Context())
	if err != nil {
		respond.Internal(w, h.logger, "catalog.list_specialties", err)
		return
	}
	respond.Success(w, http.StatusOK, "specialties", specialties)
}
