package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters for the booking and payment flows.
type BookingMetrics struct {
	bookingsCreated      prometheus.Counter
	bookingConflicts     prometheus.Counter
	availabilityRequests *prometheus.CounterVec
	paymentIntents       *prometheus.CounterVec
	tokensIssued         prometheus.Counter
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "doctorsportal",
			Subsystem: "bookings",
			Name:      "created_total",
			Help:      "Total bookings persisted",
		}),
		bookingConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "doctorsportal",
			Subsystem: "bookings",
			Name:      "conflicts_total",
			Help:      "Total booking attempts rejected as duplicates",
		}),
		availabilityRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "doctorsportal",
			Subsystem: "catalog",
			Name:      "availability_requests_total",
			Help:      "Total availability queries",
		}, []string{"dated"}),
		paymentIntents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "doctorsportal",
			Subsystem: "payments",
			Name:      "intents_total",
			Help:      "Total payment intents requested from the processor",
		}, []string{"status"}),
		tokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "doctorsportal",
			Subsystem: "auth",
			Name:      "tokens_issued_total",
			Help:      "Total access tokens issued",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsCreated, m.bookingConflicts, m.availabilityRequests, m.paymentIntents, m.tokensIssued)
	return m
}

func (m *BookingMetrics) ObserveBookingCreated() {
	if m == nil {
		return
	}
	m.bookingsCreated.Inc()
}

func (m *BookingMetrics) ObserveBookingConflict() {
	if m == nil {
		return
	}
	m.bookingConflicts.Inc()
}

func (m *BookingMetrics) ObserveAvailability(dated bool) {
	if m == nil {
		return
	}
	label := "false"
	if dated {
		label = "true"
	}
	m.availabilityRequests.WithLabelValues(label).Inc()
}

func (m *BookingMetrics) ObservePaymentIntent(status string) {
	if m == nil {
		return
	}
	m.paymentIntents.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) ObserveTokenIssued() {
	if m == nil {
		return
	}
	m.tokensIssued.Inc()
}
