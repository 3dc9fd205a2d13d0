// Package slotgrid expands a turf's operating window into bookable slots.
// Everything here is pure: no I/O, the grid is recomputed on every call.
package slotgrid

import (
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

// Starts returns the slot start times of one court for one day.
// The window is walked with a fixed step from open time; a trailing slot that
// would run past close time is dropped, never shortened.
func Starts(turf *domain.Turf) []types.TimeString {
	step := turf.SlotDurationMinutes
	if step <= 0 || !turf.OpenTime.IsBefore(turf.CloseTime) {
		return []types.TimeString{}
	}

	starts := make([]types.TimeString, 0, Count(turf))
	current := turf.OpenTime

	for current.IsBefore(turf.CloseTime) {
		end, err := current.AddMinutes(step)
		if err != nil || end.IsAfter(turf.CloseTime) {
			break
		}
		starts = append(starts, current)
		current = end
	}

	return starts
}

// Count returns the number of slots per court per day
func Count(turf *domain.Turf) int {
	if turf.SlotDurationMinutes <= 0 {
		return 0
	}
	window := turf.WindowMinutes()
	if window <= 0 {
		return 0
	}
	return window / turf.SlotDurationMinutes
}

// Expand returns every slot of the turf on date, ordered by court position then start time.
// An inactive turf has no slots.
func Expand(turf *domain.Turf, date time.Time) []domain.Slot {
	if !turf.IsActive() {
		return []domain.Slot{}
	}

	starts := Starts(turf)
	courts := turf.OrderedCourts()
	day := domain.DateOnly(date)

	slots := make([]domain.Slot, 0, len(starts)*len(courts))
	for _, court := range courts {
		slots = appendCourtSlots(slots, turf, court.ID, day, starts)
	}
	return slots
}

// ExpandCourt is Expand restricted to one court.
// Unknown courts and inactive turfs yield an empty sequence.
func ExpandCourt(turf *domain.Turf, courtID int64, date time.Time) []domain.Slot {
	if !turf.IsActive() {
		return []domain.Slot{}
	}
	if _, ok := turf.FindCourt(courtID); !ok {
		return []domain.Slot{}
	}

	starts := Starts(turf)
	return appendCourtSlots(make([]domain.Slot, 0, len(starts)), turf, courtID, domain.DateOnly(date), starts)
}

// Contains reports whether start is a slot boundary of the turf grid
func Contains(turf *domain.Turf, start types.TimeString) bool {
	for _, s := range Starts(turf) {
		if s.Equal(start) {
			return true
		}
	}
	return false
}

func appendCourtSlots(dst []domain.Slot, turf *domain.Turf, courtID int64, day time.Time, starts []types.TimeString) []domain.Slot {
	for _, start := range starts {
		dst = append(dst, domain.Slot{
			TurfID:          turf.ID,
			CourtID:         courtID,
			Date:            day,
			Start:           start,
			DurationMinutes: turf.SlotDurationMinutes,
		})
	}
	return dst
}
