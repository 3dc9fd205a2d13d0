package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

// BookingRepository is the in-memory booking ledger
type BookingRepository struct {
	store *Store
}

// TryCommit stores the booking and all of its slot keys, or nothing
func (r *BookingRepository) TryCommit(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if len(booking.Slots) == 0 {
		return nil, ErrEmptySlotSet
	}

	s := r.store
	candidate := booking.Clone()
	key := candidate.LedgerKey()

	unlock := s.partitions.Lock(key)
	defer unlock()

	var idem idempotencyKey
	if candidate.IdempotencyKey != nil {
		idem = idempotencyKey{customerID: candidate.CustomerID, key: *candidate.IdempotencyKey}
	}

	// only holders of the partition lock write these keys, so the result stays valid until the insert
	s.mu.RLock()
	if candidate.IdempotencyKey != nil {
		// a committed key is reported before any slot conflict
		if _, ok := s.idempotency[idem]; ok {
			s.mu.RUnlock()
			return nil, fmt.Errorf("%w: customer=%d", ErrDuplicateIdempotencyKey, candidate.CustomerID)
		}
	}
	taken := make([]types.TimeString, 0)
	for _, start := range candidate.Slots {
		if _, ok := s.occupied[key][start]; ok {
			taken = append(taken, start)
		}
	}
	s.mu.RUnlock()

	if len(taken) > 0 {
		sortStarts(taken)
		return nil, &domain.SlotUnavailableError{
			TurfID:  candidate.TurfID,
			CourtID: candidate.CourtID,
			Date:    candidate.BookingDate.Format(domain.DateFormat),
			Slots:   taken,
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// the same key may have been committed meanwhile on another partition
	if candidate.IdempotencyKey != nil {
		if _, ok := s.idempotency[idem]; ok {
			return nil, fmt.Errorf("%w: customer=%d", ErrDuplicateIdempotencyKey, candidate.CustomerID)
		}
	}

	s.nextID++
	now := s.now()
	candidate.ID = s.nextID
	candidate.CreatedAt = now
	candidate.UpdatedAt = now

	if s.occupied[key] == nil {
		s.occupied[key] = make(map[types.TimeString]int64)
	}
	for _, start := range candidate.Slots {
		s.occupied[key][start] = candidate.ID
	}
	if candidate.IdempotencyKey != nil {
		s.idempotency[idem] = candidate.ID
	}
	s.bookings[candidate.ID] = candidate

	return candidate.Clone(), nil
}

// Cancel removes the booking and releases its slots
func (r *BookingRepository) Cancel(_ context.Context, id int64) error {
	s := r.store

	s.mu.RLock()
	booking, ok := s.bookings[id]
	var key string
	if ok {
		key = booking.LedgerKey()
	}
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
	}

	unlock := s.partitions.Lock(key)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// cancelled concurrently between the read and the lock
	booking, ok = s.bookings[id]
	if !ok {
		return fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
	}

	for _, start := range booking.Slots {
		delete(s.occupied[key], start)
	}
	if len(s.occupied[key]) == 0 {
		delete(s.occupied, key)
	}
	if booking.IdempotencyKey != nil {
		delete(s.idempotency, idempotencyKey{customerID: booking.CustomerID, key: *booking.IdempotencyKey})
	}
	delete(s.bookings, id)

	return nil
}

// Lookup returns the occupied slot starts of a court on a date, ascending
func (r *BookingRepository) Lookup(_ context.Context, turfID, courtID int64, date time.Time) ([]types.TimeString, error) {
	s := r.store
	key := domain.LedgerKey(turfID, courtID, date)

	s.mu.RLock()
	starts := make([]types.TimeString, 0, len(s.occupied[key]))
	for start := range s.occupied[key] {
		starts = append(starts, start)
	}
	s.mu.RUnlock()

	sortStarts(starts)
	return starts, nil
}

// GetByID returns a copy of the booking
func (r *BookingRepository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	booking, ok := r.store.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
	}
	return booking.Clone(), nil
}

// FindByIdempotencyKey returns the booking a customer committed under key
func (r *BookingRepository) FindByIdempotencyKey(_ context.Context, customerID int64, key string) (*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.idempotency[idempotencyKey{customerID: customerID, key: key}]
	if !ok {
		return nil, fmt.Errorf("%w: customer=%d key=%s", ErrBookingNotFound, customerID, key)
	}
	return r.store.bookings[id].Clone(), nil
}

// ListByTurf returns bookings of a turf, optionally for one court and day.
// A single day is ordered by court and first slot, otherwise newest dates come first.
func (r *BookingRepository) ListByTurf(_ context.Context, filter domain.TurfBookingsFilter) ([]*domain.Booking, error) {
	var date string
	if filter.Date != nil {
		date = filter.Date.Format(domain.DateFormat)
	}

	bookings := r.collect(func(b *domain.Booking) bool {
		if b.TurfID != filter.TurfID {
			return false
		}
		if filter.CourtID != nil && b.CourtID != *filter.CourtID {
			return false
		}
		return date == "" || b.BookingDate.Format(domain.DateFormat) == date
	})

	if filter.Date != nil {
		sort.Slice(bookings, func(i, j int) bool {
			if bookings[i].CourtID != bookings[j].CourtID {
				return bookings[i].CourtID < bookings[j].CourtID
			}
			return bookings[i].Slots[0].Minutes() < bookings[j].Slots[0].Minutes()
		})
	} else {
		sortNewestFirst(bookings)
	}

	return bookings, nil
}

// ListByCustomer returns bookings of a customer, optionally on one turf, newest first
func (r *BookingRepository) ListByCustomer(_ context.Context, filter domain.CustomerBookingsFilter) ([]*domain.Booking, error) {
	bookings := r.collect(func(b *domain.Booking) bool {
		if b.CustomerID != filter.CustomerID {
			return false
		}
		return filter.TurfID == nil || b.TurfID == *filter.TurfID
	})

	sortNewestFirst(bookings)
	return bookings, nil
}

func (r *BookingRepository) collect(match func(b *domain.Booking) bool) []*domain.Booking {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	res := make([]*domain.Booking, 0)
	for _, b := range r.store.bookings {
		if match(b) {
			res = append(res, b.Clone())
		}
	}
	return res
}

func sortNewestFirst(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].BookingDate.Equal(bookings[j].BookingDate) {
			return bookings[i].BookingDate.After(bookings[j].BookingDate)
		}
		return bookings[i].ID > bookings[j].ID
	})
}

func sortStarts(starts []types.TimeString) {
	sort.Slice(starts, func(i, j int) bool { return starts[i].Minutes() < starts[j].Minutes() })
}
