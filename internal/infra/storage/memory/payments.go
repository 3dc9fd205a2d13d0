package memory

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

// PaymentRepository applies payment status changes in memory
type PaymentRepository struct {
	store *Store
}

// Transition moves the booking from t.From to t.To if the stored status still equals t.From
func (r *PaymentRepository) Transition(_ context.Context, t *domain.PaymentTransition) error {
	s := r.store

	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[t.BookingID]
	if !ok {
		return fmt.Errorf("%w: id=%d", ErrBookingNotFound, t.BookingID)
	}
	if booking.PaymentStatus != t.From {
		return fmt.Errorf("%w: booking=%d current=%s expected=%s target=%s",
			ErrStatusMismatch, t.BookingID, booking.PaymentStatus, t.From, t.To)
	}

	now := s.now()
	updated := booking.Clone()
	updated.PaymentStatus = t.To
	if t.Amount != nil {
		v := *t.Amount
		updated.PaymentAmount = &v
	}
	if t.Method != nil {
		v := *t.Method
		updated.PaymentMethod = &v
	}
	if t.Reason != nil {
		v := *t.Reason
		updated.PaymentFailureReason = &v
	}
	updated.UpdatedAt = now
	s.bookings[t.BookingID] = updated

	t.CreatedAt = now
	s.transitions[t.BookingID] = append(s.transitions[t.BookingID], *t)

	return nil
}

// ListTransitions returns the audit trail of a booking, oldest first
func (r *PaymentRepository) ListTransitions(_ context.Context, bookingID int64) ([]domain.PaymentTransition, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	res := make([]domain.PaymentTransition, len(r.store.transitions[bookingID]))
	copy(res, r.store.transitions[bookingID])
	return res, nil
}
