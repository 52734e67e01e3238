package notify

import (
	"context"
	"fmt"

	"github.com/medbook/doctors-portal/internal/bookings"
	"github.com/medbook/doctors-portal/pkg/logging"
)

// Service sends patient-facing notifications. It satisfies the booking
// service's Notifier; failures are reported to the caller, which treats
// delivery as best effort.
type Service struct {
	email  EmailSender
	logger *logging.Logger
}

// NewService creates a notification service.
func NewService(email EmailSender, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{email: email, logger: logger}
}

var _ bookings.Notifier = (*Service)(nil)

// BookingConfirmed emails the patient their appointment confirmation.
func (s *Service) BookingConfirmed(ctx context.Context, booking *bookings.Booking) error {
	if s.email == nil {
		s.logger.Debug("notify: email sender not configured, skipping confirmation")
		return nil
	}
	if booking.Email == "" {
		return fmt.Errorf("notify: booking %s has no email", booking.ID)
	}

	name := booking.PatientName
	if name == "" {
		name = "there"
	}

	subject := fmt.Sprintf("Your appointment for %s is confirmed", booking.TreatmentName)
	body := fmt.Sprintf(`Hello %s,

Your appointment for %s on %s at %s is confirmed.

Please arrive ten minutes early and bring a photo ID.

— Doctors Portal`, name, booking.TreatmentName, booking.AppointmentDate, booking.Slot)

	html := fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px;">
<h2>Appointment Confirmed</h2>
<p>Hello %s,</p>
<p>Your appointment for <strong>%s</strong> on <strong>%s</strong> at <strong>%s</strong> is confirmed.</p>
<p>Please arrive ten minutes early and bring a photo ID.</p>
<p style="color: #6b7280; font-size: 12px; margin-top: 20px;">— Doctors Portal</p>
</div>`, name, booking.TreatmentName, booking.AppointmentDate, booking.Slot)

	msg := EmailMessage{
		To:      booking.Email,
		ToName:  booking.PatientName,
		Subject: subject,
		Body:    body,
		HTML:    html,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("notify: failed to send booking confirmation", "error", err, "booking_id", booking.ID)
		return fmt.Errorf("notify: booking confirmation: %w", err)
	}

	s.logger.Info("notify: booking confirmation sent", "booking_id", booking.ID, "to", booking.Email)
	return nil
}
