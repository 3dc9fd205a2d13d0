package get_free_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

var (
	// ErrTurfNotFound is returned when the turf does not exist
	ErrTurfNotFound = fmt.Errorf("get_free_slots: turf %w", domain.ErrNotFound)

	// ErrCourtNotFound is returned when the court does not belong to the turf
	ErrCourtNotFound = fmt.Errorf("get_free_slots: court %w", domain.ErrNotFound)

	// ErrTurfInactive is returned for a turf that takes no bookings
	ErrTurfInactive = fmt.Errorf("get_free_slots: %w", domain.ErrTurfInactive)

	// ErrInvalidInput is returned when ids or the date are missing
	ErrInvalidInput = fmt.Errorf("get_free_slots: invalid input: %w", domain.ErrInvalidSlotRequest)

	// ErrStorageUnavailable is returned when the catalog or the ledger cannot be read
	ErrStorageUnavailable = fmt.Errorf("get_free_slots: %w", domain.ErrStorageUnavailable)

	// ErrInternal is returned on unexpected errors
	ErrInternal = errors.New("get_free_slots: internal error")
)
