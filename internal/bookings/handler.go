package bookings

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medbook/doctors-portal/internal/http/respond"
	"github.com/medbook/doctors-portal/internal/observability/metrics"
	"github.com/medbook/doctors-portal/pkg/logging"
)

// Handler exposes booking operations over HTTP.
type Handler struct {
	service *Service
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
}

// NewHandler creates a bookings HTTP handler.
func NewHandler(service *Service, m *metrics.BookingMetrics, logger *logging.Logger) *Handler {
	if service == nil {
		panic("bookings: service required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, metrics: m, logger: logger}
}

// Create handles POST /bookings.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	booking, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateBooking):
			h.metrics.ObserveBookingConflict()
			respond.Fail(w, http.StatusConflict,
				fmt.Sprintf("you already have a booking for %s on %s", req.TreatmentName, req.AppointmentDate))
		case errors.Is(err, ErrInvalidRequest):
			respond.Fail(w, http.StatusBadRequest, err.Error())
		default:
			respond.Internal(w, h.logger, "bookings.create", err)
		}
		return
	}

	h.metrics.ObserveBookingCreated()
	respond.Success(w, http.StatusCreated, "booking", booking)
}

// GetByID handles GET /bookings/{id}. Absent bookings are an explicit 404,
// never a null success.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.NotFound(w, "booking not found")
			return
		}
		respond.Internal(w, h.logger, "bookings.get", err)
		return
	}
	respond.Success(w, http.StatusOK, "booking", booking)
}

// ListByEmail handles GET /bookings?email=. The Verify and self-only gates
// run before this; a denied request never reaches it.
func (h *Handler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		respond.Fail(w, http.StatusBadRequest, "email is required")
		return
	}

	list, err := h.service.ListByEmail(r.Context(), email)
	if err != nil {
		respond.Internal(w, h.logger, "bookings.list", err)
		return
	}
	respond.SuccessCount(w, http.StatusOK, "bookings", list, len(list))
}
