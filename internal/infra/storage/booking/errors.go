package booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

const (
	constraintSlotKey        = "booking_slots_pkey"
	constraintIdempotencyKey = "bookings_customer_idempotency_key"
)

var (
	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = fmt.Errorf("booking.repository: booking %w", domain.ErrNotFound)

	// ErrDuplicateIdempotencyKey is returned when the customer already committed a booking with the same key
	ErrDuplicateIdempotencyKey = fmt.Errorf("booking.repository: idempotency key reused: %w", domain.ErrDuplicateRequest)

	// ErrStorageUnavailable is returned when the ledger transaction cannot run
	ErrStorageUnavailable = fmt.Errorf("booking.repository: %w", domain.ErrStorageUnavailable)

	// ErrEmptySlotSet is returned when a booking without slots reaches the ledger
	ErrEmptySlotSet = fmt.Errorf("booking.repository: empty slot set: %w", domain.ErrInvalidSlotRequest)

	// ErrBuildQuery is returned when a SQL statement cannot be built
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery is returned when a SQL statement fails
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
