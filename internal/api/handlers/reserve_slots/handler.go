package reserve_slots

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-TurfBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/bookings/models"
	reserveSlots "github.com/m04kA/SMC-TurfBookingService/internal/usecase/reserve_slots"
)

const (
	// HeaderIdempotencyKey lets a client retry a reservation without booking twice
	HeaderIdempotencyKey = "Idempotency-Key"
	// HeaderReplayed marks a response served from an earlier commit
	HeaderReplayed = "Idempotent-Replayed"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgSlotUnavailable    = "some of the requested slots are already booked"
	msgTurfNotFound       = "turf not found"
	msgCourtNotFound      = "court not found on this turf"
	msgCustomerNotFound   = "customer not found"
	msgTurfInactive       = "turf is not accepting bookings"
)

type Handler struct {
	useCase ReserveSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
// Header: Idempotency-Key (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ReserveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, fmt.Sprintf("%s: %v", msgInvalidRequestBody, err))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(r.Header.Get(HeaderIdempotencyKey))
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotUnavailable):
			taken, _ := domain.ConflictingSlots(err)
			slots := make([]string, len(taken))
			for i, s := range taken {
				slots[i] = s.String()
			}
			h.logger.Warn("POST /bookings - Slots unavailable: turf_id=%d, court_id=%d, date=%s, slots=%v",
				req.TurfID, req.CourtID, req.BookingDate, slots)
			handlers.RespondSlotConflict(w, msgSlotUnavailable, slots)

		case errors.Is(err, reserveSlots.ErrTurfNotFound):
			h.logger.Warn("POST /bookings - Turf not found: turf_id=%d", req.TurfID)
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, reserveSlots.ErrCourtNotFound):
			h.logger.Warn("POST /bookings - Court not found: turf_id=%d, court_id=%d", req.TurfID, req.CourtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, reserveSlots.ErrCustomerNotFound):
			h.logger.Warn("POST /bookings - Customer not found: customer_id=%d", req.CustomerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, domain.ErrTurfInactive):
			h.logger.Warn("POST /bookings - Turf inactive: turf_id=%d", req.TurfID)
			handlers.RespondUnprocessable(w, msgTurfInactive)

		case errors.Is(err, domain.ErrInvalidSlotRequest):
			h.logger.Warn("POST /bookings - Invalid reservation: customer_id=%d, error=%v", req.CustomerID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, domain.ErrStorageUnavailable):
			h.logger.Error("POST /bookings - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings - Failed to reserve: customer_id=%d, turf_id=%d, error=%v",
				req.CustomerID, req.TurfID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := models.FromDomainBooking(result.Booking)

	if result.Replayed {
		h.logger.Info("POST /bookings - Replayed booking_id=%d for customer_id=%d", result.Booking.ID, req.CustomerID)
		w.Header().Set(HeaderReplayed, "true")
		handlers.RespondJSON(w, http.StatusOK, response)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, customer_id=%d, turf_id=%d",
		result.Booking.ID, req.CustomerID, req.TurfID)
	w.Header().Set("Location", fmt.Sprintf("/api/v1/bookings/%d", result.Booking.ID))
	handlers.RespondJSON(w, http.StatusCreated, response)
}
