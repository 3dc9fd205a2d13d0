// Package memory is a process local implementation of every storage contract.
// It backs the service when no database is configured and is used by usecase tests.
package memory

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/pkg/keylock"
	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

type idempotencyKey struct {
	customerID int64
	key        string
}

// Store holds all state behind one RWMutex. Ledger commits and cancels are
// additionally serialized per (turf, court, date) with a keyed mutex, so the
// occupancy check and the insert of one partition never interleave while
// other partitions proceed.
type Store struct {
	mu sync.RWMutex

	turfs     map[int64]*domain.Turf
	customers map[int64]*domain.Customer

	bookings    map[int64]*domain.Booking
	occupied    map[string]map[types.TimeString]int64 // ledger key -> slot start -> booking id
	idempotency map[idempotencyKey]int64
	transitions map[int64][]domain.PaymentTransition
	nextID      int64

	partitions *keylock.KeyLock
	now        func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		turfs:       make(map[int64]*domain.Turf),
		customers:   make(map[int64]*domain.Customer),
		bookings:    make(map[int64]*domain.Booking),
		occupied:    make(map[string]map[types.TimeString]int64),
		idempotency: make(map[idempotencyKey]int64),
		transitions: make(map[int64][]domain.PaymentTransition),
		partitions:  keylock.New(),
		now:         time.Now,
	}
}

// Turfs returns the turf repository view
func (s *Store) Turfs() *TurfRepository {
	return &TurfRepository{store: s}
}

// Customers returns the customer repository view
func (s *Store) Customers() *CustomerRepository {
	return &CustomerRepository{store: s}
}

// Bookings returns the ledger view
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

// Payments returns the payment repository view
func (s *Store) Payments() *PaymentRepository {
	return &PaymentRepository{store: s}
}

// PutTurf inserts or replaces a turf
func (s *Store) PutTurf(turf *domain.Turf) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := turf.Clone()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
		c.UpdatedAt = c.CreatedAt
	}
	s.turfs[c.ID] = c
}

// PutCustomer inserts or replaces a customer
func (s *Store) PutCustomer(customer *domain.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *customer
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	s.customers[c.ID] = &c
}
