package payments

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/medbook/doctors-portal/internal/bookings"
	"github.com/medbook/doctors-portal/internal/http/respond"
	"github.com/medbook/doctors-portal/internal/observability/metrics"
	"github.com/medbook/doctors-portal/pkg/logging"
)

// BookingAttacher marks a booking paid once its charge settles.
type BookingAttacher interface {
	AttachPayment(ctx context.Context, id, transactionID string) error
}

// Handler exposes the payment endpoints.
type Handler struct {
	intents  IntentCreator
	store    Store
	bookings BookingAttacher
	metrics  *metrics.BookingMetrics
	logger   *logging.Logger
}

// NewHandler creates a payments HTTP handler.
func NewHandler(intents IntentCreator, store Store, attacher BookingAttacher, m *metrics.BookingMetrics, logger *logging.Logger) *Handler {
	if intents == nil {
		panic("payments: intent creator required")
	}
	if store == nil {
		panic("payments: store required")
	}
	if attacher == nil {
		panic("payments: booking attacher required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{intents: intents, store: store, bookings: attacher, metrics: m, logger: logger}
}

// CreateIntent handles POST /create-payment-intent. The response shape is
// fixed by the payment form on the client: a bare {"clientSecret": ...}.
func (h *Handler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req IntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Price <= 0 {
		respond.Fail(w, http.StatusBadRequest, "price must be greater than zero")
		return
	}

	amountCents := int64(math.Round(req.Price * 100))
	secret, err := h.intents.CreateIntent(r.Context(), amountCents)
	if err != nil {
		h.metrics.ObservePaymentIntent("failed")
		respond.Internal(w, h.logger, "payments.create_intent", err)
		return
	}

	h.metrics.ObservePaymentIntent("created")
	respond.Raw(w, http.StatusOK, map[string]string{"clientSecret": secret})
}

// RecordPayment handles POST /payments. The booking is marked paid first so
// a payment record is never written against a booking that does not exist.
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.BookingID == "" || req.TransactionID == "" {
		respond.Fail(w, http.StatusBadRequest, "bookingId and transactionId are required")
		return
	}

	if err := h.bookings.AttachPayment(r.Context(), req.BookingID, req.TransactionID); err != nil {
		if errors.Is(err, bookings.ErrNotFound) {
			respond.NotFound(w, "booking not found")
			return
		}
		respond.Internal(w, h.logger, "payments.attach", err)
		return
	}

	payment, err := h.store.Record(r.Context(), &req)
	if err != nil {
		respond.Internal(w, h.logger, "payments.record", err)
		return
	}

	h.metrics.ObservePaymentIntent("recorded")
	h.logger.Info("payment recorded",
		"payment_id", payment.ID, "booking_id", payment.BookingID, "transaction_id", payment.TransactionID)
	respond.Success(w, http.StatusCreated, "payment", payment)
}
