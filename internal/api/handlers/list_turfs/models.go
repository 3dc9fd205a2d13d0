package list_turfs

import (
	"strings"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/slotgrid"
)

// TurfSummary is a list entry
type TurfSummary struct {
	ID                  int64    `json:"id"`
	Name                string   `json:"name"`
	Area                string   `json:"area"`
	OpenTime            string   `json:"openTime"`
	CloseTime           string   `json:"closeTime"`
	SlotDurationMinutes int      `json:"slotDurationMinutes"`
	SlotsPerCourt       int      `json:"slotsPerCourt"`
	Courts              int      `json:"courts"`
	Games               []string `json:"games"`
	Status              string   `json:"status"`
}

// TurfListResponse HTTP response model
type TurfListResponse struct {
	Turfs []TurfSummary `json:"turfs"`
	Total int           `json:"total"`
}

// Filter narrows the list by query parameters
type Filter struct {
	Area       string // case-insensitive exact match
	Game       string
	ActiveOnly bool
}

func (f Filter) match(t *domain.Turf) bool {
	if f.ActiveOnly && !t.IsActive() {
		return false
	}
	if f.Area != "" && !strings.EqualFold(f.Area, t.Area) {
		return false
	}
	if f.Game != "" && !t.OffersGame(f.Game) {
		return false
	}
	return true
}

// FromDomain converts the catalog into the HTTP response
func FromDomain(turfs []*domain.Turf, filter Filter) *TurfListResponse {
	res := &TurfListResponse{Turfs: make([]TurfSummary, 0, len(turfs))}
	for _, t := range turfs {
		if !filter.match(t) {
			continue
		}
		res.Turfs = append(res.Turfs, TurfSummary{
			ID:                  t.ID,
			Name:                t.Name,
			Area:                t.Area,
			OpenTime:            t.OpenTime.String(),
			CloseTime:           t.CloseTime.String(),
			SlotDurationMinutes: t.SlotDurationMinutes,
			SlotsPerCourt:       slotgrid.Count(t),
			Courts:              len(t.Courts),
			Games:               append([]string{}, t.Games...),
			Status:              string(t.Status),
		})
	}
	res.Total = len(res.Turfs)
	return res
}
