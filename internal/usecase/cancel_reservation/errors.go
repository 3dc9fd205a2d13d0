package cancel_reservation

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

var (
	// ErrBookingNotFound is returned when the booking does not exist or is already cancelled
	ErrBookingNotFound = fmt.Errorf("cancel_reservation: booking %w", domain.ErrNotFound)

	// ErrInvalidInput is returned for a non-positive booking id
	ErrInvalidInput = errors.New("cancel_reservation: invalid input data")

	// ErrStorageUnavailable is returned when the ledger cannot remove the booking atomically
	ErrStorageUnavailable = fmt.Errorf("cancel_reservation: %w", domain.ErrStorageUnavailable)

	// ErrInternal is returned on unexpected errors
	ErrInternal = errors.New("cancel_reservation: internal error")
)
