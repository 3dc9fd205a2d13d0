package get_free_slots

import (
	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	getFreeSlots "github.com/m04kA/SMC-TurfBookingService/internal/usecase/get_free_slots"
)

// FreeSlotsResponse HTTP response model
type FreeSlotsResponse struct {
	TurfID              int64          `json:"turfId"`
	CourtID             int64          `json:"courtId"`
	Date                string         `json:"date"` // "2025-10-15"
	SlotDurationMinutes int            `json:"slotDurationMinutes"`
	TotalSlots          int            `json:"totalSlots"`
	FreeSlots           []SlotResponse `json:"freeSlots"`
}

// SlotResponse is one bookable slot
type SlotResponse struct {
	Start string `json:"start"` // "10:00"
	End   string `json:"end"`   // "11:00"
}

// FromUseCaseResponse converts the use case result into the HTTP response
func FromUseCaseResponse(resp *getFreeSlots.Response) *FreeSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		end, err := s.End()
		if err != nil {
			// grid slots never run past close time
			continue
		}
		slots = append(slots, SlotResponse{Start: s.Start.String(), End: end.String()})
	}

	return &FreeSlotsResponse{
		TurfID:              resp.TurfID,
		CourtID:             resp.CourtID,
		Date:                resp.Date.Format(domain.DateFormat),
		SlotDurationMinutes: resp.SlotDurationMinutes,
		TotalSlots:          resp.TotalSlots,
		FreeSlots:           slots,
	}
}
