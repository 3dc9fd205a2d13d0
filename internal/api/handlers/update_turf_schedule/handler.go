package update_turf_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/turfs"
)

const (
	msgInvalidTurfID      = "invalid turf id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidTime        = "invalid time, expected HH:MM"
	msgNotFound           = "turf not found"
)

type Handler struct {
	service TurfService
	logger  Logger
}

func NewHandler(service TurfService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/turfs/{turfId}/schedule
// Existing bookings are kept even when their slots leave the new grid.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	turfID, err := handlers.PathID(r, "turfId")
	if err != nil {
		h.logger.Warn("PUT /turfs/{id}/schedule - Invalid turf ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurfID)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /turfs/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+err.Error())
		return
	}

	schedule, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("PUT /turfs/{id}/schedule - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	turf, err := h.service.UpdateSchedule(r.Context(), turfID, schedule)
	if err != nil {
		switch {
		case errors.Is(err, turfs.ErrTurfNotFound):
			h.logger.Warn("PUT /turfs/{id}/schedule - Turf not found: turf_id=%d", turfID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, turfs.ErrInvalidSchedule):
			h.logger.Warn("PUT /turfs/{id}/schedule - Invalid schedule: turf_id=%d, error=%v", turfID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, turfs.ErrStorageUnavailable):
			h.logger.Error("PUT /turfs/{id}/schedule - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PUT /turfs/{id}/schedule - Failed to update schedule: turf_id=%d, error=%v", turfID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /turfs/{id}/schedule - Schedule updated: turf_id=%d, %s-%s/%dmin, status=%s, by user_id=%d",
		turfID, turf.OpenTime, turf.CloseTime, turf.SlotDurationMinutes, turf.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(turf))
}
