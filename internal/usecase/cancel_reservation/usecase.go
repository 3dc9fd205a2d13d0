package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

// UseCase cancels a booking and frees its slots
type UseCase struct {
	ledger BookingLedger
	logger Logger
}

// NewUseCase creates the use case
func NewUseCase(ledger BookingLedger, logger Logger) *UseCase {
	return &UseCase{
		ledger: ledger,
		logger: logger,
	}
}

// Execute removes the booking record and all of its slot keys as one unit.
// The payment audit trail is kept.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: booking=%d", req.BookingID)

	// 1. Input
	if req.BookingID <= 0 {
		uc.logger.Warn("CancelReservation: invalid booking id=%d", req.BookingID)
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	// 2. Booking to report what gets released
	booking, err := uc.ledger.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, uc.wrapLedgerError("failed to get booking", req.BookingID, err)
	}

	// 3. Ledger removal
	if err := uc.ledger.Cancel(ctx, req.BookingID); err != nil {
		return nil, uc.wrapLedgerError("failed to cancel booking", req.BookingID, err)
	}

	if booking.PaymentStatus == domain.PaymentStatusPaid {
		uc.logger.Warn("CancelReservation: booking id=%d was paid, refund is not issued automatically", booking.ID)
	}

	uc.logger.Info("CancelReservation: booking id=%d cancelled, released %v on turf=%d court=%d date=%s",
		booking.ID, booking.Slots, booking.TurfID, booking.CourtID, booking.BookingDate.Format(domain.DateFormat))

	return &Response{
		BookingID:     booking.ID,
		TurfID:        booking.TurfID,
		CourtID:       booking.CourtID,
		Date:          booking.BookingDate,
		ReleasedSlots: booking.Slots,
		PaymentStatus: booking.PaymentStatus,
	}, nil
}

func (uc *UseCase) wrapLedgerError(step string, id int64, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		uc.logger.Warn("CancelReservation: booking id=%d not found", id)
		return ErrBookingNotFound
	case errors.Is(err, domain.ErrStorageUnavailable):
		uc.logger.Error("CancelReservation: storage unavailable: %v", err)
		return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, step, err)
	}
	uc.logger.Error("CancelReservation: %s id=%d: %v", step, id, err)
	return fmt.Errorf("%w: %s: %v", ErrInternal, step, err)
}
