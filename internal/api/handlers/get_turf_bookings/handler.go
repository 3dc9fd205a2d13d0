package get_turf_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/bookings"
)

const (
	msgInvalidTurfID = "invalid turf id"
	msgInvalidParams = "invalid query parameters"
	msgTurfNotFound  = "turf not found"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/turfs/{turfId}/bookings
// Query params: courtId, date (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	turfID, err := handlers.PathID(r, "turfId")
	if err != nil {
		h.logger.Warn("GET /turfs/{id}/bookings - Invalid turf ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurfID)
		return
	}

	serviceReq, err := ToServiceRequest(turfID, r)
	if err != nil {
		h.logger.Warn("GET /turfs/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListTurfBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrTurfNotFound):
			h.logger.Warn("GET /turfs/{id}/bookings - Turf not found: turf_id=%d", turfID)
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, bookings.ErrStorageUnavailable):
			h.logger.Error("GET /turfs/{id}/bookings - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /turfs/{id}/bookings - Failed to get bookings: turf_id=%d, error=%v", turfID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /turfs/{id}/bookings - Bookings retrieved successfully: turf_id=%d, count=%d",
		turfID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
