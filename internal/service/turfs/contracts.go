package turfs

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

// TurfRepository is the turf catalog storage
type TurfRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Turf, error)
	List(ctx context.Context) ([]*domain.Turf, error)
	UpdateSchedule(ctx context.Context, id int64, schedule domain.TurfSchedule) error
}

// Cache is a read-through cache for catalog entries
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Metrics records cache lookups
type Metrics interface {
	RecordCacheResult(result string)
}

// Logger is the logging surface used by the service
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
