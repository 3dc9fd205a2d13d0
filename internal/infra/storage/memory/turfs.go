package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

// TurfRepository serves the turf catalog from memory
type TurfRepository struct {
	store *Store
}

// GetByID returns a copy of the turf
func (r *TurfRepository) GetByID(_ context.Context, id int64) (*domain.Turf, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	turf, ok := r.store.turfs[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", ErrTurfNotFound, id)
	}
	return turf.Clone(), nil
}

// List returns copies of all turfs ordered by id
func (r *TurfRepository) List(_ context.Context) ([]*domain.Turf, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	turfs := make([]*domain.Turf, 0, len(r.store.turfs))
	for _, t := range r.store.turfs {
		turfs = append(turfs, t.Clone())
	}
	sort.Slice(turfs, func(i, j int) bool { return turfs[i].ID < turfs[j].ID })

	return turfs, nil
}

// UpdateSchedule changes operating hours, slot duration and status
func (r *TurfRepository) UpdateSchedule(_ context.Context, id int64, schedule domain.TurfSchedule) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	turf, ok := r.store.turfs[id]
	if !ok {
		return fmt.Errorf("%w: id=%d", ErrTurfNotFound, id)
	}

	updated := turf.Clone()
	updated.OpenTime = schedule.OpenTime
	updated.CloseTime = schedule.CloseTime
	updated.SlotDurationMinutes = schedule.SlotDurationMinutes
	updated.Status = schedule.Status
	updated.UpdatedAt = r.store.now()
	r.store.turfs[id] = updated

	return nil
}

// CustomerRepository serves customers from memory
type CustomerRepository struct {
	store *Store
}

// GetByID returns a copy of the customer
func (r *CustomerRepository) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	customer, ok := r.store.customers[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", ErrCustomerNotFound, id)
	}
	c := *customer
	return &c, nil
}
