package cancel_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	cancelReservation "github.com/m04kA/SMC-TurfBookingService/internal/usecase/cancel_reservation"
)

const (
	msgInvalidBookingID = "invalid booking id"
	msgNotFound         = "booking not found"
)

type Handler struct {
	useCase CancelReservationUseCase
	logger  Logger
}

func NewHandler(useCase CancelReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	result, err := h.useCase.Execute(r.Context(), &cancelReservation.Request{BookingID: bookingID})
	if err != nil {
		switch {
		case errors.Is(err, cancelReservation.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrStorageUnavailable):
			h.logger.Error("PATCH /bookings/{id}/cancel - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled: booking_id=%d, by user_id=%d", bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
