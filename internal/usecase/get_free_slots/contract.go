package get_free_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

// TurfCatalog returns turfs with their courts
type TurfCatalog interface {
	GetTurf(ctx context.Context, id int64) (*domain.Turf, error)
}

// BookingLedger answers which slots of a court are taken
type BookingLedger interface {
	Lookup(ctx context.Context, turfID, courtID int64, date time.Time) ([]types.TimeString, error)
}

// Logger is the logging surface of the use case
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
