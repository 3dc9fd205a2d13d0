package turf

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

var (
	// ErrTurfNotFound is returned when the turf does not exist
	ErrTurfNotFound = fmt.Errorf("turf.repository: turf %w", domain.ErrNotFound)

	// ErrStorageUnavailable is returned when the database cannot be reached
	ErrStorageUnavailable = fmt.Errorf("turf.repository: %w", domain.ErrStorageUnavailable)

	// ErrBuildQuery is returned when a SQL statement cannot be built
	ErrBuildQuery = errors.New("turf.repository: failed to build query")

	// ErrExecQuery is returned when a SQL statement fails
	ErrExecQuery = errors.New("turf.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("turf.repository: failed to scan row")
)
