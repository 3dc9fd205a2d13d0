package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

// Error kinds shared by every layer. Layer specific errors wrap one of these
// so that errors.Is works from storage up to the HTTP handlers.
var (
	// ErrInvalidSlotRequest is a malformed or out-of-window slot set, rejected before the ledger
	ErrInvalidSlotRequest = errors.New("invalid slot request")

	// ErrSlotUnavailable is a ledger conflict with an existing booking
	ErrSlotUnavailable = errors.New("slot unavailable")

	// ErrTurfInactive is returned when the turf grid is empty because the turf is inactive
	ErrTurfInactive = errors.New("turf inactive")

	// ErrNotFound is an unknown turf, court, customer or booking
	ErrNotFound = errors.New("not found")

	// ErrInvalidStatusTransition is a payment state machine violation
	ErrInvalidStatusTransition = errors.New("invalid payment status transition")

	// ErrStorageUnavailable means the ledger cannot guarantee atomic commits
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrDuplicateRequest is an idempotency key that was already committed
	ErrDuplicateRequest = errors.New("duplicate request")
)

// SlotUnavailableError lists the requested slots that are already booked
type SlotUnavailableError struct {
	TurfID  int64
	CourtID int64
	Date    string
	Slots   []types.TimeString
}

func (e *SlotUnavailableError) Error() string {
	parts := make([]string, len(e.Slots))
	for i, s := range e.Slots {
		parts[i] = s.String()
	}
	return fmt.Sprintf("%s: turf=%d court=%d date=%s slots=[%s]",
		ErrSlotUnavailable, e.TurfID, e.CourtID, e.Date, strings.Join(parts, ","))
}

// Is makes errors.Is(err, ErrSlotUnavailable) true
func (e *SlotUnavailableError) Is(target error) bool {
	return target == ErrSlotUnavailable
}

// ConflictingSlots extracts the conflicting slots from err, if any
func ConflictingSlots(err error) ([]types.TimeString, bool) {
	var conflict *SlotUnavailableError
	if errors.As(err, &conflict) {
		return conflict.Slots, true
	}
	return nil, false
}
