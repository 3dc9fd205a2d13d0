package get_free_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/slotgrid"
	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

// UseCase returns the bookable slots of a court
type UseCase struct {
	catalog TurfCatalog
	ledger  BookingLedger
	logger  Logger
}

// NewUseCase creates the use case
func NewUseCase(catalog TurfCatalog, ledger BookingLedger, logger Logger) *UseCase {
	return &UseCase{
		catalog: catalog,
		ledger:  ledger,
		logger:  logger,
	}
}

// Execute expands the court grid for the date and drops every slot the ledger holds.
// The result is a snapshot: a slot listed here may be taken before it is reserved.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetFreeSlots: turf=%d, court=%d, date=%s",
		req.TurfID, req.CourtID, req.Date.Format(domain.DateFormat))

	// 1. Input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetFreeSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Turf and court
	turf, err := uc.catalog.GetTurf(ctx, req.TurfID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			uc.logger.Warn("GetFreeSlots: turf id=%d not found", req.TurfID)
			return nil, ErrTurfNotFound
		case errors.Is(err, domain.ErrStorageUnavailable):
			uc.logger.Error("GetFreeSlots: catalog unavailable: %v", err)
			return nil, fmt.Errorf("%w: failed to get turf: %v", ErrStorageUnavailable, err)
		}
		uc.logger.Error("GetFreeSlots: failed to get turf id=%d: %v", req.TurfID, err)
		return nil, fmt.Errorf("%w: failed to get turf: %v", ErrInternal, err)
	}

	if _, ok := turf.FindCourt(req.CourtID); !ok {
		uc.logger.Warn("GetFreeSlots: court id=%d not found in turf id=%d", req.CourtID, req.TurfID)
		return nil, ErrCourtNotFound
	}

	if !turf.IsActive() {
		uc.logger.Warn("GetFreeSlots: turf id=%d is %s", req.TurfID, turf.Status)
		return nil, ErrTurfInactive
	}

	// 3. Grid of the court
	grid := slotgrid.ExpandCourt(turf, req.CourtID, req.Date)

	// 4. Occupied slots
	taken, err := uc.ledger.Lookup(ctx, req.TurfID, req.CourtID, req.Date)
	if err != nil {
		if errors.Is(err, domain.ErrStorageUnavailable) {
			uc.logger.Error("GetFreeSlots: ledger unavailable: %v", err)
			return nil, fmt.Errorf("%w: failed to lookup slots: %v", ErrStorageUnavailable, err)
		}
		uc.logger.Error("GetFreeSlots: failed to lookup slots: %v", err)
		return nil, fmt.Errorf("%w: failed to lookup slots: %v", ErrInternal, err)
	}

	// 5. Grid minus ledger, grid order is already chronological
	free := subtract(grid, taken)

	uc.logger.Info("GetFreeSlots: %d/%d slots free on turf=%d court=%d",
		len(free), len(grid), req.TurfID, req.CourtID)

	return &Response{
		TurfID:              req.TurfID,
		CourtID:             req.CourtID,
		Date:                domain.DateOnly(req.Date),
		SlotDurationMinutes: turf.SlotDurationMinutes,
		TotalSlots:          len(grid),
		Slots:               free,
	}, nil
}

func validateRequest(req *Request) error {
	if req.TurfID <= 0 {
		return fmt.Errorf("%w: turfID must be positive", ErrInvalidInput)
	}
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

func subtract(grid []domain.Slot, taken []types.TimeString) []domain.Slot {
	occupied := make(map[int]struct{}, len(taken))
	for _, start := range taken {
		occupied[start.Minutes()] = struct{}{}
	}

	free := make([]domain.Slot, 0, len(grid))
	for _, slot := range grid {
		if _, ok := occupied[slot.Start.Minutes()]; ok {
			continue
		}
		free = append(free, slot)
	}
	return free
}
