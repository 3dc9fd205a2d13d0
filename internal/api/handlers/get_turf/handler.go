package get_turf

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/turfs"
)

const (
	msgInvalidTurfID = "invalid turf id"
	msgNotFound      = "turf not found"
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

// Handle GET /api/v1/turfs/{turfId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	turfID, err := handlers.PathID(r, "turfId")
	if err != nil {
		h.logger.Warn("GET /turfs/{id} - Invalid turf ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurfID)
		return
	}

	turf, err := h.service.GetTurf(r.Context(), turfID)
	if err != nil {
		switch {
		case errors.Is(err, turfs.ErrTurfNotFound):
			h.logger.Warn("GET /turfs/{id} - Turf not found: turf_id=%d", turfID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, turfs.ErrStorageUnavailable):
			h.logger.Error("GET /turfs/{id} - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /turfs/{id} - Failed to get turf: turf_id=%d, error=%v", turfID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /turfs/{id} - Turf retrieved successfully: turf_id=%d", turfID)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(turf))
}
