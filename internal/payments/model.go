package payments

import "errors"

// Payment is a settled card charge recorded against a booking.
type Payment struct {
	ID            string  `json:"_id" dynamodbav:"id"`
	BookingID     string  `json:"bookingId" dynamodbav:"bookingId"`
	Email         string  `json:"email" dynamodbav:"email"`
	TreatmentName string  `json:"treatment,omitempty" dynamodbav:"treatment,omitempty"`
	Price         float64 `json:"price" dynamodbav:"price"`
	TransactionID string  `json:"transactionId" dynamodbav:"transactionId"`
	CreatedAt     string  `json:"createdAt" dynamodbav:"createdAt"`
}

// ErrBookingNotFound is returned when a payment references a booking that
// does not exist.
var ErrBookingNotFound = errors.New("payments: booking not found")

// IntentRequest is the body of POST /create-payment-intent. Price is in
// whole currency units; the gateway is charged in cents.
type IntentRequest struct {
	Price float64 `json:"price"`
}

// RecordRequest is the body of POST /payments, sent by the client after
// the card charge succeeds.
type RecordRequest struct {
	BookingID     string  `json:"bookingId"`
	Email         string  `json:"email"`
	TreatmentName string  `json:"treatment"`
	Price         float64 `json:"price"`
	TransactionID string  `json:"transactionId"`
}
