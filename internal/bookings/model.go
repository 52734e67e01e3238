package bookings

import (
	"errors"
	"fmt"
	"strings"
)

// Booking is a patient's reservation of one slot for one treatment on one
// date. The conflict key is the canonical uniqueness triple; the store keys
// the table on it so the invariant holds under concurrent writes.
type Booking struct {
	ID              string  `dynamodbav:"id" json:"_id"`
	ConflictKey     string  `dynamodbav:"conflictKey" json:"-"`
	PatientName     string  `dynamodbav:"patientName" json:"patientName"`
	Email           string  `dynamodbav:"email" json:"email"`
	Phone           string  `dynamodbav:"phone,omitempty" json:"phone,omitempty"`
	AppointmentDate string  `dynamodbav:"appointmentDate" json:"appointmentDate"`
	TreatmentName   string  `dynamodbav:"treatmentName" json:"treatmentName"`
	Slot            string  `dynamodbav:"slot" json:"slot"`
	Price           float64 `dynamodbav:"price,omitempty" json:"price,omitempty"`
	PaymentStatus   string  `dynamodbav:"paymentStatus,omitempty" json:"paymentStatus,omitempty"`
	TransactionID   string  `dynamodbav:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt       string  `dynamodbav:"createdAt" json:"createdAt"`
}

// PaymentStatusPaid is the only paymentStatus value attached after creation.
const PaymentStatusPaid = "paid"

var (
	// ErrDuplicateBooking means the (email, date, treatment) triple already
	// has a persisted booking.
	ErrDuplicateBooking = errors.New("bookings: duplicate booking")
	// ErrNotFound means no booking matches the requested identifier.
	ErrNotFound = errors.New("bookings: booking not found")
	// ErrInvalidRequest marks request-shape failures the client can fix.
	ErrInvalidRequest = errors.New("invalid booking request")
)

// CreateRequest carries a patient-initiated booking request.
type CreateRequest struct {
	PatientName     string  `json:"patientName"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	AppointmentDate string  `json:"appointmentDate"`
	TreatmentName   string  `json:"treatmentName"`
	Slot            string  `json:"slot"`
	Price           float64 `json:"price"`
}

// Validate checks the fields the conflict key and slot subtraction depend on.
func (r *CreateRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(r.AppointmentDate) == "" {
		missing = append(missing, "appointmentDate")
	}
	if strings.TrimSpace(r.TreatmentName) == "" {
		missing = append(missing, "treatmentName")
	}
	if strings.TrimSpace(r.Slot) == "" {
		missing = append(missing, "slot")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrInvalidRequest, strings.Join(missing, ", "))
	}
	return nil
}

// conflictKey builds the canonical identity|date|treatment key. Email is the
// canonical patient identity everywhere.
func conflictKey(email, date, treatment string) string {
	return strings.ToLower(strings.TrimSpace(email)) + "|" + date + "|" + treatment
}
