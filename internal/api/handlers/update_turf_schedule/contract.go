package update_turf_schedule

import (
	"context"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

type TurfService interface {
	UpdateSchedule(ctx context.Context, id int64, schedule domain.TurfSchedule) (*domain.Turf, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
