package get_turf

import (
	"context"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

type TurfService interface {
	GetTurf(ctx context.Context, id int64) (*domain.Turf, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
