package get_customer

import (
	"context"

	"github.com/m04kA/SMC-TurfBookingService/internal/service/bookings/models"
)

type CustomerService interface {
	GetCustomer(ctx context.Context, req *models.CustomerRequest) (*models.CustomerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
