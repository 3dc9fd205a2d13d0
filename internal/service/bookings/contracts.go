package bookings

import (
	"context"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

// BookingRepository reads committed bookings
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByTurf(ctx context.Context, filter domain.TurfBookingsFilter) ([]*domain.Booking, error)
	ListByCustomer(ctx context.Context, filter domain.CustomerBookingsFilter) ([]*domain.Booking, error)
}

// CustomerRepository reads customers
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// TurfCatalog reads turfs
type TurfCatalog interface {
	GetTurf(ctx context.Context, id int64) (*domain.Turf, error)
}

// PaymentHistory reads the payment audit trail
type PaymentHistory interface {
	History(ctx context.Context, bookingID int64) ([]domain.PaymentTransition, error)
}

// Logger is the logging surface used by the service
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
