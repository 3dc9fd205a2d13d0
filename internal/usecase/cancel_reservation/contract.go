package cancel_reservation

import (
	"context"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

// BookingLedger removes bookings together with their slot keys
type BookingLedger interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64) error
}

// Logger is the logging surface of the use case
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
