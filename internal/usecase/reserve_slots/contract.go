package reserve_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

// TurfCatalog returns turfs with their courts
type TurfCatalog interface {
	GetTurf(ctx context.Context, id int64) (*domain.Turf, error)
}

// CustomerRepository resolves the customer making the reservation
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// BookingLedger commits bookings atomically
type BookingLedger interface {
	TryCommit(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64) error
	FindByIdempotencyKey(ctx context.Context, customerID int64, key string) (*domain.Booking, error)
}

// PaymentTracker opens the payment of a committed booking
type PaymentTracker interface {
	InitPending(ctx context.Context, bookingID int64) (*domain.Booking, error)
}

// Metrics records reservation outcomes
type Metrics interface {
	RecordReservation(outcome string)
	RecordSlotConflicts(turfID string, slots int)
}

// TimeProvider returns the current time, replaced in tests
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface of the use case
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the wall clock
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
