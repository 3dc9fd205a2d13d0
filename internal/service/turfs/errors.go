package turfs

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

var (
	// ErrTurfNotFound is returned when the turf does not exist
	ErrTurfNotFound = fmt.Errorf("turfs.service: turf %w", domain.ErrNotFound)

	// ErrInvalidSchedule is returned when operating hours or slot duration are malformed
	ErrInvalidSchedule = errors.New("turfs.service: invalid schedule")

	// ErrStorageUnavailable is returned when the catalog storage cannot be reached
	ErrStorageUnavailable = fmt.Errorf("turfs.service: %w", domain.ErrStorageUnavailable)

	// ErrInternal is returned on unexpected storage errors
	ErrInternal = errors.New("turfs.service: internal error")
)
