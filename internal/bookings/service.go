package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/medbook/doctors-portal/pkg/logging"
)

var bookingsTracer = otel.Tracer("doctorsportal.internal.bookings")

// Notifier sends the post-create confirmation. Best-effort only.
type Notifier interface {
	BookingConfirmed(ctx context.Context, booking *Booking) error
}

// Service creates bookings and resolves conflicts.
type Service struct {
	store    Store
	notifier Notifier
	logger   *logging.Logger
}

// NewService constructs a bookings service.
func NewService(store Store, notifier Notifier, logger *logging.Logger) *Service {
	if store == nil {
		panic("bookings: store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{store: store, notifier: notifier, logger: logger}
}

// Create validates and persists a booking. A duplicate (email, date,
// treatment) triple fails with ErrDuplicateBooking and writes nothing.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Booking, error) {
	ctx, span := bookingsTracer.Start(ctx, "bookings.create")
	defer span.End()
	span.SetAttributes(
		attribute.String("doctorsportal.treatment", req.TreatmentName),
		attribute.String("doctorsportal.date", req.AppointmentDate),
	)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	booking := &Booking{
		ID:              uuid.NewString(),
		ConflictKey:     conflictKey(req.Email, req.AppointmentDate, req.TreatmentName),
		PatientName:     req.PatientName,
		Email:           req.Email,
		Phone:           req.Phone,
		AppointmentDate: req.AppointmentDate,
		TreatmentName:   req.TreatmentName,
		Slot:            req.Slot,
		Price:           req.Price,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.store.Create(ctx, booking); err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.logger.Info("booking created",
		"booking_id", booking.ID,
		"email", booking.Email,
		"treatment", booking.TreatmentName,
		"date", booking.AppointmentDate,
		"slot", booking.Slot,
	)

	if s.notifier != nil {
		if err := s.notifier.BookingConfirmed(ctx, booking); err != nil {
			s.logger.Warn("booking confirmation not sent", "booking_id", booking.ID, "error", err)
		}
	}
	return booking, nil
}

// GetByID fetches one booking.
func (s *Service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.store.GetByID(ctx, id)
}

// ListByEmail returns a patient's bookings. Authorization happens upstream;
// by the time this runs the caller's identity already matched the email.
func (s *Service) ListByEmail(ctx context.Context, email string) ([]Booking, error) {
	return s.store.ListByEmail(ctx, email)
}
