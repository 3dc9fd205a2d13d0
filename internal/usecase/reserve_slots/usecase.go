package reserve_slots

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

// UseCase reserves slots of a court.
// Conflicts are settled by the ledger alone, this use case never retries a lost race.
type UseCase struct {
	catalog      TurfCatalog
	customers    CustomerRepository
	ledger       BookingLedger
	payments     PaymentTracker
	cfg          Config
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case. A nil cfg.Location means UTC.
func NewUseCase(
	catalog TurfCatalog,
	customers CustomerRepository,
	ledger BookingLedger,
	payments PaymentTracker,
	cfg Config,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &UseCase{
		catalog:      catalog,
		customers:    customers,
		ledger:       ledger,
		payments:     payments,
		cfg:          cfg,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute validates the request against the turf grid and commits it to the ledger
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlots: customer=%d, turf=%d, court=%d, date=%s, slots=%v",
		req.CustomerID, req.TurfID, req.CourtID, req.Date.Format(domain.DateFormat), req.Slots)

	resp, err := uc.execute(ctx, req)
	uc.metrics.RecordReservation(outcome(resp, err))
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Input
	if err := validateRequest(req, uc.cfg.MaxTeamSize); err != nil {
		uc.logger.Warn("ReserveSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Current time
	now := uc.timeProvider.Now()

	// 3. Turf, court and game
	turf, err := uc.catalog.GetTurf(ctx, req.TurfID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			uc.logger.Warn("ReserveSlots: turf id=%d not found", req.TurfID)
			return nil, ErrTurfNotFound
		case errors.Is(err, domain.ErrStorageUnavailable):
			uc.logger.Error("ReserveSlots: catalog unavailable: %v", err)
			return nil, fmt.Errorf("%w: failed to get turf: %v", ErrStorageUnavailable, err)
		}
		uc.logger.Error("ReserveSlots: failed to get turf id=%d: %v", req.TurfID, err)
		return nil, fmt.Errorf("%w: failed to get turf: %v", ErrInternal, err)
	}

	if _, ok := turf.FindCourt(req.CourtID); !ok {
		uc.logger.Warn("ReserveSlots: court id=%d not found in turf id=%d", req.CourtID, req.TurfID)
		return nil, ErrCourtNotFound
	}

	if !turf.IsActive() {
		uc.logger.Warn("ReserveSlots: turf id=%d is %s", req.TurfID, turf.Status)
		return nil, ErrTurfInactive
	}

	if !turf.OffersGame(req.Game) {
		uc.logger.Warn("ReserveSlots: turf id=%d does not offer %q", req.TurfID, req.Game)
		return nil, fmt.Errorf("%w: %q", ErrGameNotOffered, req.Game)
	}

	// 4. Slots must be a subset of the court grid
	slots, err := parseSlots(turf, req.Slots)
	if err != nil {
		uc.logger.Warn("ReserveSlots: slot validation failed: %v", err)
		return nil, err
	}

	// 5. Replay of an earlier commit, even when its date has passed since
	if req.IdempotencyKey != nil {
		if resp, err := uc.replay(ctx, req, slots); resp != nil || err != nil {
			return resp, err
		}
	}

	// 6. Date
	if err := validateDate(req.Date, now, uc.cfg.Location, uc.cfg.MaxAdvanceDays); err != nil {
		uc.logger.Warn("ReserveSlots: date validation failed: %v", err)
		return nil, err
	}

	// 7. Customer
	if _, err := uc.customers.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("ReserveSlots: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		return nil, uc.wrapLedgerError("failed to get customer", err)
	}

	// 8. Atomic commit
	booking, err := uc.ledger.TryCommit(ctx, &domain.Booking{
		TurfID:              req.TurfID,
		CourtID:             req.CourtID,
		CustomerID:          req.CustomerID,
		BookingDate:         domain.DateOnly(req.Date),
		Slots:               slots,
		SlotDurationMinutes: turf.SlotDurationMinutes,
		Game:                req.Game,
		TeamSize:            req.TeamSize,
		PaymentStatus:       domain.PaymentStatusNone,
		IdempotencyKey:      req.IdempotencyKey,
	})
	if err != nil {
		if conflicting, ok := domain.ConflictingSlots(err); ok {
			uc.metrics.RecordSlotConflicts(strconv.FormatInt(req.TurfID, 10), len(conflicting))
			uc.logger.Warn("ReserveSlots: turf=%d court=%d date=%s slots %v already booked",
				req.TurfID, req.CourtID, req.Date.Format(domain.DateFormat), conflicting)
			return nil, fmt.Errorf("reserve_slots: %w", err)
		}
		if errors.Is(err, domain.ErrDuplicateRequest) && req.IdempotencyKey != nil {
			// a concurrent request with the same key won the commit
			uc.logger.Info("ReserveSlots: key committed concurrently, customer=%d", req.CustomerID)
			if resp, err := uc.replay(ctx, req, slots); resp != nil || err != nil {
				return resp, err
			}
		}
		return nil, uc.wrapLedgerError("failed to commit booking", err)
	}

	// 9. Payment starts as pending; a booking that cannot be tracked is rolled back
	tracked, err := uc.payments.InitPending(ctx, booking.ID)
	if err != nil {
		uc.logger.Error("ReserveSlots: init payment for booking id=%d: %v", booking.ID, err)
		if cancelErr := uc.ledger.Cancel(ctx, booking.ID); cancelErr != nil {
			uc.logger.Error("ReserveSlots: compensation failed, booking id=%d left without payment: %v",
				booking.ID, cancelErr)
		}
		if errors.Is(err, domain.ErrStorageUnavailable) {
			return nil, fmt.Errorf("%w: failed to init payment: %v", ErrStorageUnavailable, err)
		}
		return nil, fmt.Errorf("%w: failed to init payment: %v", ErrInternal, err)
	}

	uc.logger.Info("ReserveSlots: booking id=%d committed, turf=%d court=%d date=%s slots=%v",
		tracked.ID, tracked.TurfID, tracked.CourtID, tracked.BookingDate.Format(domain.DateFormat), tracked.Slots)

	return &Response{Booking: tracked}, nil
}

// replay returns the booking committed under the request's key.
// Both results are nil when the key is unused.
func (uc *UseCase) replay(ctx context.Context, req *Request, slots []types.TimeString) (*Response, error) {
	existing, err := uc.ledger.FindByIdempotencyKey(ctx, req.CustomerID, *req.IdempotencyKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, uc.wrapLedgerError("failed to find idempotency key", err)
	}

	if !sameReservation(existing, req, slots) {
		uc.logger.Warn("ReserveSlots: key of booking id=%d reused with another payload", existing.ID)
		return nil, ErrIdempotencyKeyReused
	}

	uc.logger.Info("ReserveSlots: replaying booking id=%d", existing.ID)
	return &Response{Booking: existing, Replayed: true}, nil
}

func (uc *UseCase) wrapLedgerError(step string, err error) error {
	if errors.Is(err, domain.ErrStorageUnavailable) {
		uc.logger.Error("ReserveSlots: storage unavailable: %v", err)
		return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, step, err)
	}
	uc.logger.Error("ReserveSlots: %s: %v", step, err)
	return fmt.Errorf("%w: %s: %v", ErrInternal, step, err)
}

func outcome(resp *Response, err error) string {
	switch {
	case err == nil && resp.Replayed:
		return domain.OutcomeReplayed
	case err == nil:
		return domain.OutcomeReserved
	case errors.Is(err, domain.ErrSlotUnavailable):
		return domain.OutcomeConflict
	case errors.Is(err, domain.ErrInvalidSlotRequest),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrTurfInactive):
		return domain.OutcomeInvalid
	default:
		return domain.OutcomeFailed
	}
}
