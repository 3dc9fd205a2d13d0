package reserve_slots

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/slotgrid"
	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

// validateRequest checks the fields that need no lookups
func validateRequest(req *Request, maxTeamSize int) error {
	if req.TurfID <= 0 {
		return fmt.Errorf("%w: turfID must be positive", ErrInvalidInput)
	}
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	req.Game = strings.TrimSpace(req.Game)
	if req.Game == "" || len(req.Game) > domain.MaxGameNameLength {
		return fmt.Errorf("%w: game must be 1-%d characters", ErrInvalidInput, domain.MaxGameNameLength)
	}

	if req.TeamSize < domain.MinTeamSize || req.TeamSize > maxTeamSize {
		return fmt.Errorf("%w: teamSize must be between %d and %d", ErrInvalidInput, domain.MinTeamSize, maxTeamSize)
	}

	if req.IdempotencyKey != nil {
		key := strings.TrimSpace(*req.IdempotencyKey)
		if key == "" || len(key) > domain.MaxIdempotencyKeyLength {
			return fmt.Errorf("%w: idempotency key must be 1-%d characters", ErrInvalidInput, domain.MaxIdempotencyKeyLength)
		}
		req.IdempotencyKey = &key
	}

	return nil
}

// validateDate rejects past dates and dates beyond the advance booking window.
// Both are compared as calendar days in the turf timezone.
func validateDate(bookingDate, now time.Time, loc *time.Location, maxAdvanceDays int) error {
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	day := domain.DateOnly(bookingDate)

	if day.Before(today) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, day.Format(domain.DateFormat))
	}

	if maxAdvanceDays == 0 {
		return nil
	}

	if day.After(today.AddDate(0, 0, maxAdvanceDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
}

// parseSlots turns the requested starts into an ascending duplicate-free set on the turf grid
func parseSlots(turf *domain.Turf, raw []string) ([]types.TimeString, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: at least one slot is required", ErrInvalidSlots)
	}

	grid := slotgrid.Starts(turf)
	onGrid := make(map[int]struct{}, len(grid))
	for _, s := range grid {
		onGrid[s.Minutes()] = struct{}{}
	}

	seen := make(map[int]struct{}, len(raw))
	slots := make([]types.TimeString, 0, len(raw))
	for _, r := range raw {
		start, err := types.NewTimeStringFromString(strings.TrimSpace(r))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSlots, r, err)
		}
		if _, ok := seen[start.Minutes()]; ok {
			return nil, fmt.Errorf("%w: %s requested twice", ErrInvalidSlots, start)
		}
		if _, ok := onGrid[start.Minutes()]; !ok {
			return nil, fmt.Errorf("%w: %s is not a slot of turf %d", ErrInvalidSlots, start, turf.ID)
		}
		seen[start.Minutes()] = struct{}{}
		slots = append(slots, start)
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Minutes() < slots[j].Minutes() })
	return slots, nil
}

// sameReservation reports whether a replayed request asks for what was committed
func sameReservation(b *domain.Booking, req *Request, slots []types.TimeString) bool {
	if b.TurfID != req.TurfID || b.CourtID != req.CourtID || b.CustomerID != req.CustomerID {
		return false
	}
	if b.BookingDate.Format(domain.DateFormat) != req.Date.Format(domain.DateFormat) {
		return false
	}
	if b.Game != req.Game || b.TeamSize != req.TeamSize {
		return false
	}
	if len(b.Slots) != len(slots) {
		return false
	}
	for i := range slots {
		if !b.Slots[i].Equal(slots[i]) {
			return false
		}
	}
	return true
}
