package catalog

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/medbook/doctors-portal/pkg/logging"
)

var availabilityTracer = otel.Tracer("doctorsportal.internal.catalog")

// OptionSource lists the appointment option catalog.
type OptionSource interface {
	List(ctx context.Context) ([]AppointmentOption, error)
}

// BookingLookup reports the slots already taken on a date, grouped by
// treatment name.
type BookingLookup interface {
	TakenSlots(ctx context.Context, date string) (map[string][]string, error)
}

// AvailabilityService computes the remaining open slots per treatment for a
// date by subtracting booked slots from the catalog. Read-only.
type AvailabilityService struct {
	options  OptionSource
	bookings BookingLookup
	logger   *logging.Logger
}

// NewAvailabilityService constructs an availability service.
func NewAvailabilityService(options OptionSource, bookings BookingLookup, logger *logging.Logger) *AvailabilityService {
	if options == nil {
		panic("catalog: option source required")
	}
	if bookings == nil {
		panic("catalog: booking lookup required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AvailabilityService{options: options, bookings: bookings, logger: logger}
}

// OptionsForDate returns every catalog option with its slots narrowed to what
// is still open on the given date, preserving slot order. Fully booked
// options come back with an empty slot list. An empty date returns the
// unfiltered catalog. Bookings naming a treatment not in the catalog have
// nothing to subtract from and are ignored.
func (s *AvailabilityService) OptionsForDate(ctx context.Context, date string) ([]AppointmentOption, error) {
	ctx, span := availabilityTracer.Start(ctx, "catalog.options_for_date")
	defer span.End()
	span.SetAttributes(attribute.String("doctorsportal.date", date))

	options, err := s.options.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if date == "" {
		return options, nil
	}

	taken, err := s.bookings.TakenSlots(ctx, date)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	for i := range options {
		options[i].Slots = subtractSlots(options[i].Slots, taken[options[i].Name])
	}
	return options, nil
}

// Specialties returns the id+name projection of the catalog.
func (s *AvailabilityService) Specialties(ctx context.Context) ([]Specialty, error) {
	options, err := s.options.List(ctx)
	if err != nil {
		return nil, err
	}
	specialties := make([]Specialty, 0, len(options))
	for _, option := range options {
		specialties = append(specialties, Specialty{ID: option.ID, Name: option.Name})
	}
	return specialties, nil
}

func subtractSlots(all, booked []string) []string {
	remaining := make([]string, 0, len(all))
	if len(booked) == 0 {
		return append(remaining, all...)
	}
	taken := make(map[string]struct{}, len(booked))
	for _, slot := range booked {
		taken[slot] = struct{}{}
	}
	for _, slot := range all {
		if _, ok := taken[slot]; !ok {
			remaining = append(remaining, slot)
		}
	}
	return remaining
}
