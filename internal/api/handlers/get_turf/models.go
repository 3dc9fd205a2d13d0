package get_turf

import (
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/slotgrid"
)

// TurfResponse HTTP response model
type TurfResponse struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	Address             string          `json:"address"`
	Area                string          `json:"area"`
	OpenTime            string          `json:"openTime"`
	CloseTime           string          `json:"closeTime"`
	SlotDurationMinutes int             `json:"slotDurationMinutes"`
	SlotsPerCourt       int             `json:"slotsPerCourt"`
	Games               []string        `json:"games"`
	Status              string          `json:"status"`
	Courts              []CourtResponse `json:"courts"`
	UpdatedAt           string          `json:"updatedAt"`
}

// CourtResponse is one court of the turf, in display order
type CourtResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// FromDomain converts a turf into the HTTP response
func FromDomain(turf *domain.Turf) *TurfResponse {
	courts := turf.OrderedCourts()
	res := &TurfResponse{
		ID:                  turf.ID,
		Name:                turf.Name,
		Address:             turf.Address,
		Area:                turf.Area,
		OpenTime:            turf.OpenTime.String(),
		CloseTime:           turf.CloseTime.String(),
		SlotDurationMinutes: turf.SlotDurationMinutes,
		SlotsPerCourt:       slotgrid.Count(turf),
		Games:               append([]string{}, turf.Games...),
		Status:              string(turf.Status),
		Courts:              make([]CourtResponse, 0, len(courts)),
		UpdatedAt:           turf.UpdatedAt.Format(time.RFC3339),
	}
	for _, c := range courts {
		res.Courts = append(res.Courts, CourtResponse{ID: c.ID, Name: c.Name, Position: c.Position})
	}
	return res
}
