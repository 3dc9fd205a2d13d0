package memory

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

var (
	// ErrTurfNotFound is returned when the turf does not exist
	ErrTurfNotFound = fmt.Errorf("memory.storage: turf %w", domain.ErrNotFound)

	// ErrCustomerNotFound is returned when the customer does not exist
	ErrCustomerNotFound = fmt.Errorf("memory.storage: customer %w", domain.ErrNotFound)

	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = fmt.Errorf("memory.storage: booking %w", domain.ErrNotFound)

	// ErrDuplicateIdempotencyKey is returned when the customer already committed a booking with the same key
	ErrDuplicateIdempotencyKey = fmt.Errorf("memory.storage: idempotency key reused: %w", domain.ErrDuplicateRequest)

	// ErrEmptySlotSet is returned when a booking without slots reaches the ledger
	ErrEmptySlotSet = fmt.Errorf("memory.storage: empty slot set: %w", domain.ErrInvalidSlotRequest)

	// ErrStatusMismatch is returned when the stored payment status is not the expected source status
	ErrStatusMismatch = fmt.Errorf("memory.storage: status mismatch: %w", domain.ErrInvalidStatusTransition)

	// ErrInvalidSeed is returned when the seed file cannot be applied
	ErrInvalidSeed = errors.New("memory.storage: invalid seed")
)
