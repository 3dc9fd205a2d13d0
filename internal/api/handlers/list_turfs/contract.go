package list_turfs

import (
	"context"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

type TurfService interface {
	ListTurfs(ctx context.Context) ([]*domain.Turf, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
