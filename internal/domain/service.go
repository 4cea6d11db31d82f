package domain

import "github.com/shopspring/decimal"

// TherapistService a service offered by a therapist with the effective duration and price.
// Per-therapist values fall back to the service type defaults.
type TherapistService struct {
	TherapistID     int64
	ServiceID       int64
	Name            string
	DurationMinutes int
	Price           decimal.Decimal
	IsActive        bool
}
