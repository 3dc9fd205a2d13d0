package payments

import (
	"context"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/integrations/paymentgateway"
)

// PaymentRepository applies compare-and-set status changes with an audit trail
type PaymentRepository interface {
	Transition(ctx context.Context, t *domain.PaymentTransition) error
	ListTransitions(ctx context.Context, bookingID int64) ([]domain.PaymentTransition, error)
}

// BookingReader reads the current booking state
type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// GatewayClient reads payment results from the payment gateway
type GatewayClient interface {
	GetPaymentStatus(ctx context.Context, bookingID int64) (*paymentgateway.Payment, error)
}

// Metrics records applied transitions
type Metrics interface {
	RecordPaymentTransition(from, to string)
}

// Logger is the logging surface used by the service
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
