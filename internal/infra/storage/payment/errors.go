package payment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

var (
	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = fmt.Errorf("payment.repository: booking %w", domain.ErrNotFound)

	// ErrStatusMismatch is returned when the stored status is not the expected source status
	ErrStatusMismatch = fmt.Errorf("payment.repository: status mismatch: %w", domain.ErrInvalidStatusTransition)

	// ErrStorageUnavailable is returned when the transition transaction cannot run
	ErrStorageUnavailable = fmt.Errorf("payment.repository: %w", domain.ErrStorageUnavailable)

	// ErrBuildQuery is returned when a SQL statement cannot be built
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery is returned when a SQL statement fails
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
