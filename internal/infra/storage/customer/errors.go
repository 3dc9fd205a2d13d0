package customer

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

var (
	// ErrCustomerNotFound is returned when the customer does not exist
	ErrCustomerNotFound = fmt.Errorf("customer.repository: customer %w", domain.ErrNotFound)

	// ErrBuildQuery is returned when a SQL statement cannot be built
	ErrBuildQuery = errors.New("customer.repository: failed to build query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("customer.repository: failed to scan row")
)
