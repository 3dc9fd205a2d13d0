package list_turfs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TurfBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/turfs"
)

const msgInvalidParams = "invalid query parameters"

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

// Handle GET /api/v1/turfs
// Query params: area, game, active (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := Filter{
		Area: q.Get("area"),
		Game: q.Get("game"),
	}
	if activeStr := q.Get("active"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			h.logger.Warn("GET /turfs - Invalid active flag %q: %v", activeStr, err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		filter.ActiveOnly = active
	}

	list, err := h.service.ListTurfs(r.Context())
	if err != nil {
		if errors.Is(err, turfs.ErrStorageUnavailable) {
			h.logger.Error("GET /turfs - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)
			return
		}
		h.logger.Error("GET /turfs - Failed to list turfs: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := FromDomain(list, filter)

	h.logger.Info("GET /turfs - Turfs retrieved successfully: count=%d", response.Total)
	handlers.RespondJSON(w, http.StatusOK, response)
}
