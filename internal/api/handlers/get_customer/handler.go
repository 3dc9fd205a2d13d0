package get_customer

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/bookings/models"
)

const (
	msgInvalidCustomerID = "invalid customer id"
	msgInvalidTurfID     = "invalid turfId"
	msgNotFound          = "customer not found"
)

type Handler struct {
	service CustomerService
	logger  Logger
}

func NewHandler(service CustomerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/customers/{customerId}
// Query params: turfId (optional, narrows the bookings to one turf)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, err := handlers.PathID(r, "customerId")
	if err != nil {
		h.logger.Warn("GET /customers/{id} - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	turfID, err := handlers.QueryID(r, "turfId")
	if err != nil {
		h.logger.Warn("GET /customers/{id} - Invalid turf ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurfID)
		return
	}

	customer, err := h.service.GetCustomer(r.Context(), &models.CustomerRequest{
		CustomerID: customerID,
		TurfID:     turfID,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrCustomerNotFound):
			h.logger.Warn("GET /customers/{id} - Customer not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrStorageUnavailable):
			h.logger.Error("GET /customers/{id} - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /customers/{id} - Failed to get customer: customer_id=%d, error=%v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/{id} - Customer retrieved successfully: customer_id=%d, bookings=%d",
		customerID, len(customer.Bookings))
	handlers.RespondJSON(w, http.StatusOK, customer)
}
