package payment_status

import (
	"context"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

type PaymentService interface {
	MarkPaid(ctx context.Context, bookingID int64, amount float64, method string) (*domain.Booking, error)
	MarkFailed(ctx context.Context, bookingID int64, reason string) (*domain.Booking, error)
	Refund(ctx context.Context, bookingID int64) (*domain.Booking, error)
	Reconcile(ctx context.Context, bookingID int64) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
