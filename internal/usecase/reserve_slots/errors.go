package reserve_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

var (
	// ErrTurfNotFound is returned when the turf does not exist
	ErrTurfNotFound = fmt.Errorf("reserve_slots: turf %w", domain.ErrNotFound)

	// ErrCourtNotFound is returned when the court does not belong to the turf
	ErrCourtNotFound = fmt.Errorf("reserve_slots: court %w", domain.ErrNotFound)

	// ErrCustomerNotFound is returned when the customer does not exist
	ErrCustomerNotFound = fmt.Errorf("reserve_slots: customer %w", domain.ErrNotFound)

	// ErrTurfInactive is returned for a turf that takes no bookings
	ErrTurfInactive = fmt.Errorf("reserve_slots: %w", domain.ErrTurfInactive)

	// ErrInvalidInput is returned for missing ids, team size or game
	ErrInvalidInput = fmt.Errorf("reserve_slots: invalid input: %w", domain.ErrInvalidSlotRequest)

	// ErrInvalidSlots is returned when the slot set is empty, has duplicates or leaves the grid
	ErrInvalidSlots = fmt.Errorf("reserve_slots: invalid slots: %w", domain.ErrInvalidSlotRequest)

	// ErrInvalidDate is returned for a date in the past
	ErrInvalidDate = fmt.Errorf("reserve_slots: invalid booking date: %w", domain.ErrInvalidSlotRequest)

	// ErrDateTooFarInFuture is returned when the date is beyond the advance booking limit
	ErrDateTooFarInFuture = fmt.Errorf("reserve_slots: date is too far in the future: %w", domain.ErrInvalidSlotRequest)

	// ErrGameNotOffered is returned when the turf does not host the requested game
	ErrGameNotOffered = fmt.Errorf("reserve_slots: game is not offered: %w", domain.ErrInvalidSlotRequest)

	// ErrIdempotencyKeyReused is returned when a key comes back with a different payload
	ErrIdempotencyKeyReused = fmt.Errorf("reserve_slots: idempotency key reused with another request: %w", domain.ErrInvalidSlotRequest)

	// ErrStorageUnavailable is returned when the ledger cannot commit atomically
	ErrStorageUnavailable = fmt.Errorf("reserve_slots: %w", domain.ErrStorageUnavailable)

	// ErrInternal is returned on unexpected errors
	ErrInternal = errors.New("reserve_slots: internal error")
)
