package payments

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

var (
	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = fmt.Errorf("payments.service: booking %w", domain.ErrNotFound)

	// ErrInvalidTransition is returned when the booking is not in the source status of the operation
	ErrInvalidTransition = fmt.Errorf("payments.service: %w", domain.ErrInvalidStatusTransition)

	// ErrPaymentNotOpened is returned when a gateway result arrives before the booking's payment became pending.
	// The booking is still being reserved, so the result is worth retrying.
	ErrPaymentNotOpened = errors.New("payments.service: payment not opened yet")

	// ErrInvalidInput is returned for a missing amount, method or reason
	ErrInvalidInput = errors.New("payments.service: invalid input")

	// ErrGatewayUnavailable is returned when reconciliation cannot reach the gateway
	ErrGatewayUnavailable = errors.New("payments.service: payment gateway unavailable")

	// ErrStorageUnavailable is returned when the transition cannot be stored
	ErrStorageUnavailable = fmt.Errorf("payments.service: %w", domain.ErrStorageUnavailable)

	// ErrInternal is returned on unexpected storage errors
	ErrInternal = errors.New("payments.service: internal error")
)
