package payment_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TurfBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/payments"
)

const (
	msgInvalidBookingID   = "invalid booking id"
	msgUnknownAction      = "unknown payment action, expected paid|failed|refund|reconcile"
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "booking not found"
	msgInvalidTransition  = "payment status does not allow this change"
	msgPaymentNotOpened   = "payment is not opened yet, retry later"
	msgGatewayUnavailable = "payment gateway unavailable"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payment/{action}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/payment - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	action := mux.Vars(r)["action"]

	var booking *domain.Booking
	switch action {
	case ActionPaid:
		var req MarkPaidRequest
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /bookings/{id}/payment/paid - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+err.Error())
			return
		}
		booking, err = h.service.MarkPaid(r.Context(), bookingID, req.Amount, req.Method)

	case ActionFailed:
		var req MarkFailedRequest
		if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
			h.logger.Warn("POST /bookings/{id}/payment/failed - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+err.Error())
			return
		}
		booking, err = h.service.MarkFailed(r.Context(), bookingID, req.Reason)

	case ActionRefund:
		booking, err = h.service.Refund(r.Context(), bookingID)

	case ActionReconcile:
		booking, err = h.service.Reconcile(r.Context(), bookingID)

	default:
		h.logger.Warn("POST /bookings/{id}/payment - Unknown action %q", action)
		handlers.RespondBadRequest(w, msgUnknownAction)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, payments.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/payment/%s - Booking not found: booking_id=%d", action, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/payment/%s - Invalid transition: booking_id=%d, error=%v", action, bookingID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, payments.ErrPaymentNotOpened):
			h.logger.Warn("POST /bookings/{id}/payment/%s - Payment not opened: booking_id=%d", action, bookingID)
			handlers.RespondConflict(w, msgPaymentNotOpened)

		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/payment/%s - Invalid input: %v", action, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, payments.ErrGatewayUnavailable):
			h.logger.Error("POST /bookings/{id}/payment/%s - Gateway unavailable: %v", action, err)
			handlers.RespondError(w, http.StatusBadGateway, msgGatewayUnavailable)

		case errors.Is(err, payments.ErrStorageUnavailable):
			h.logger.Error("POST /bookings/{id}/payment/%s - Storage unavailable: %v", action, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings/{id}/payment/%s - Failed: booking_id=%d, error=%v", action, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/payment/%s - booking_id=%d payment is %s", action, bookingID, booking.PaymentStatus)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(booking))
}
