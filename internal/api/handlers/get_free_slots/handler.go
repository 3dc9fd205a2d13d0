package get_free_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	getFreeSlots "github.com/m04kA/SMC-TurfBookingService/internal/usecase/get_free_slots"
)

const (
	msgInvalidTurfID  = "invalid turf id"
	msgInvalidCourtID = "invalid court id"
	msgMissingDate    = "date is required"
	msgInvalidDate    = "invalid date, expected YYYY-MM-DD"
	msgTurfNotFound   = "turf not found"
	msgCourtNotFound  = "court not found on this turf"
	msgTurfInactive   = "turf is not accepting bookings"
)

type Handler struct {
	useCase GetFreeSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetFreeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/turfs/{turfId}/courts/{courtId}/free-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	turfID, err := handlers.PathID(r, "turfId")
	if err != nil {
		h.logger.Warn("GET /turfs/{id}/courts/{id}/free-slots - Invalid turf ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurfID)
		return
	}

	courtID, err := handlers.PathID(r, "courtId")
	if err != nil {
		h.logger.Warn("GET /turfs/{id}/courts/{id}/free-slots - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /turfs/{id}/courts/{id}/free-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /turfs/{id}/courts/{id}/free-slots - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getFreeSlots.Request{
		TurfID:  turfID,
		CourtID: courtID,
		Date:    date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getFreeSlots.ErrTurfNotFound):
			h.logger.Warn("GET /turfs/{id}/courts/{id}/free-slots - Turf not found: turf_id=%d", turfID)
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, getFreeSlots.ErrCourtNotFound):
			h.logger.Warn("GET /turfs/{id}/courts/{id}/free-slots - Court not found: turf_id=%d, court_id=%d", turfID, courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, domain.ErrTurfInactive):
			h.logger.Warn("GET /turfs/{id}/courts/{id}/free-slots - Turf inactive: turf_id=%d", turfID)
			handlers.RespondUnprocessable(w, msgTurfInactive)

		case errors.Is(err, domain.ErrInvalidSlotRequest):
			h.logger.Warn("GET /turfs/{id}/courts/{id}/free-slots - Invalid request: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, domain.ErrStorageUnavailable):
			h.logger.Error("GET /turfs/{id}/courts/{id}/free-slots - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /turfs/{id}/courts/{id}/free-slots - Failed to get slots: turf_id=%d, court_id=%d, error=%v",
				turfID, courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /turfs/{id}/courts/{id}/free-slots - Slots retrieved: turf_id=%d, court_id=%d, date=%s, free=%d/%d",
		turfID, courtID, dateStr, len(result.Slots), result.TotalSlots)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
