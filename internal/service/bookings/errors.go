package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

var (
	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = fmt.Errorf("bookings.service: booking %w", domain.ErrNotFound)

	// ErrTurfNotFound is returned when the turf does not exist
	ErrTurfNotFound = fmt.Errorf("bookings.service: turf %w", domain.ErrNotFound)

	// ErrCustomerNotFound is returned when the customer does not exist
	ErrCustomerNotFound = fmt.Errorf("bookings.service: customer %w", domain.ErrNotFound)

	// ErrStorageUnavailable is returned when bookings cannot be read
	ErrStorageUnavailable = fmt.Errorf("bookings.service: %w", domain.ErrStorageUnavailable)

	// ErrInternal is returned on unexpected storage errors
	ErrInternal = errors.New("bookings.service: internal error")
)
