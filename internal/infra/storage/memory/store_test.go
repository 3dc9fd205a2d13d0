package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/pkg/ptr"
	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

var testDate = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func newSeededStore(t *testing.T) *Store {
	t.Helper()

	seed, err := LoadSeed("testdata/seed.toml")
	require.NoError(t, err)

	store := NewStore()
	require.NoError(t, store.Apply(seed))
	return store
}

func newBooking(slots ...types.TimeString) *domain.Booking {
	return &domain.Booking{
		TurfID:              1,
		CourtID:             1,
		CustomerID:          1,
		BookingDate:         testDate,
		Slots:               slots,
		SlotDurationMinutes: 60,
		Game:                "football",
		TeamSize:            10,
		PaymentStatus:       domain.PaymentStatusNone,
	}
}

func TestLoadSeed(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	turfs, err := store.Turfs().List(ctx)
	require.NoError(t, err)
	require.Len(t, turfs, 2)

	assert.Equal(t, "Green Field Arena", turfs[0].Name)
	assert.Equal(t, domain.TurfStatusActive, turfs[0].Status)
	assert.Len(t, turfs[0].Courts, 2)
	assert.Equal(t, types.TimeString("24:00"), turfs[1].CloseTime)
	assert.Equal(t, domain.TurfStatusInactive, turfs[1].Status)

	customer, err := store.Customers().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", customer.Name)

	_, err = store.Customers().GetByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Apply_InvalidWindow(t *testing.T) {
	seed := &Seed{Turfs: []SeedTurf{{
		ID:                  1,
		OpenTime:            "18:00",
		CloseTime:           "09:00",
		SlotDurationMinutes: 60,
	}}}

	err := NewStore().Apply(seed)
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

func TestTurfRepository_ReturnsCopies(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	turf, err := store.Turfs().GetByID(ctx, 1)
	require.NoError(t, err)
	turf.Courts[0].Name = "changed"
	turf.Games[0] = "changed"

	again, err := store.Turfs().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Court A", again.Courts[0].Name)
	assert.Equal(t, "football", again.Games[0])
}

func TestTurfRepository_UpdateSchedule(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	err := store.Turfs().UpdateSchedule(ctx, 1, domain.TurfSchedule{
		OpenTime:            "06:00",
		CloseTime:           "22:00",
		SlotDurationMinutes: 30,
		Status:              domain.TurfStatusInactive,
	})
	require.NoError(t, err)

	turf, err := store.Turfs().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("06:00"), turf.OpenTime)
	assert.Equal(t, 30, turf.SlotDurationMinutes)
	assert.False(t, turf.IsActive())

	err = store.Turfs().UpdateSchedule(ctx, 42, domain.TurfSchedule{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingRepository_TryCommitAndCancel(t *testing.T) {
	store := newSeededStore(t)
	ledger := store.Bookings()
	ctx := context.Background()

	first, err := ledger.TryCommit(ctx, newBooking("11:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	occupied, err := ledger.Lookup(ctx, 1, 1, testDate)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00", "11:00"}, occupied)

	_, err = ledger.TryCommit(ctx, newBooking("10:00", "12:00"))
	require.Error(t, err)
	slots, ok := domain.ConflictingSlots(err)
	require.True(t, ok)
	assert.Equal(t, []types.TimeString{"10:00"}, slots)

	// the failed commit left nothing behind
	occupied, err = ledger.Lookup(ctx, 1, 1, testDate)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00", "11:00"}, occupied)

	// another court on the same date is a different partition
	other := newBooking("10:00")
	other.CourtID = 2
	_, err = ledger.TryCommit(ctx, other)
	require.NoError(t, err)

	require.NoError(t, ledger.Cancel(ctx, first.ID))

	occupied, err = ledger.Lookup(ctx, 1, 1, testDate)
	require.NoError(t, err)
	assert.Empty(t, occupied)

	err = ledger.Cancel(ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingRepository_IdempotencyKey(t *testing.T) {
	store := newSeededStore(t)
	ledger := store.Bookings()
	ctx := context.Background()

	b := newBooking("10:00")
	b.IdempotencyKey = ptr.Ptr("req-1")
	committed, err := ledger.TryCommit(ctx, b)
	require.NoError(t, err)

	found, err := ledger.FindByIdempotencyKey(ctx, 1, "req-1")
	require.NoError(t, err)
	assert.Equal(t, committed.ID, found.ID)

	again := newBooking("15:00")
	again.IdempotencyKey = ptr.Ptr("req-1")
	_, err = ledger.TryCommit(ctx, again)
	assert.ErrorIs(t, err, domain.ErrDuplicateRequest)

	_, err = ledger.FindByIdempotencyKey(ctx, 2, "req-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingRepository_IdempotencyKeyBeforeConflict(t *testing.T) {
	store := newSeededStore(t)
	ledger := store.Bookings()
	ctx := context.Background()

	first := newBooking("10:00", "11:00")
	first.IdempotencyKey = ptr.Ptr("req-1")
	_, err := ledger.TryCommit(ctx, first)
	require.NoError(t, err)

	retry := newBooking("10:00", "11:00")
	retry.IdempotencyKey = ptr.Ptr("req-1")
	_, err = ledger.TryCommit(ctx, retry)
	assert.ErrorIs(t, err, domain.ErrDuplicateRequest)
	assert.NotErrorIs(t, err, domain.ErrSlotUnavailable)

	unkeyed := newBooking("10:00")
	_, err = ledger.TryCommit(ctx, unkeyed)
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
}

func TestBookingRepository_ConcurrentSameSlot(t *testing.T) {
	store := newSeededStore(t)
	ledger := store.Bookings()
	ctx := context.Background()

	const contenders = 32

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	start := make(chan struct{})
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			_, err := ledger.TryCommit(ctx, newBooking("14:00"))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrSlotUnavailable):
				conflicts++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, contenders-1, conflicts)
	assert.Equal(t, 0, store.partitions.Len())
}

func TestBookingRepository_Lists(t *testing.T) {
	store := newSeededStore(t)
	ledger := store.Bookings()
	ctx := context.Background()

	_, err := ledger.TryCommit(ctx, newBooking("15:00"))
	require.NoError(t, err)

	court2 := newBooking("09:00")
	court2.CourtID = 2
	_, err = ledger.TryCommit(ctx, court2)
	require.NoError(t, err)

	nextDay := newBooking("09:00")
	nextDay.BookingDate = testDate.AddDate(0, 0, 1)
	_, err = ledger.TryCommit(ctx, nextDay)
	require.NoError(t, err)

	day, err := ledger.ListByTurf(ctx, domain.TurfBookingsFilter{TurfID: 1, Date: &testDate})
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, int64(1), day[0].CourtID)
	assert.Equal(t, int64(2), day[1].CourtID)

	all, err := ledger.ListByCustomer(ctx, domain.CustomerBookingsFilter{CustomerID: 1})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].BookingDate.After(all[2].BookingDate))
}

func TestPaymentRepository_Transition(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	b, err := store.Bookings().TryCommit(ctx, newBooking("10:00"))
	require.NoError(t, err)

	payments := store.Payments()
	require.NoError(t, payments.Transition(ctx, &domain.PaymentTransition{
		BookingID: b.ID, From: domain.PaymentStatusNone, To: domain.PaymentStatusPending,
	}))

	err = payments.Transition(ctx, &domain.PaymentTransition{
		BookingID: b.ID, From: domain.PaymentStatusNone, To: domain.PaymentStatusPending,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)

	require.NoError(t, payments.Transition(ctx, &domain.PaymentTransition{
		BookingID: b.ID, From: domain.PaymentStatusPending, To: domain.PaymentStatusPaid,
		Amount: ptr.Ptr(800.0), Method: ptr.Ptr("cash"),
	}))

	stored, err := store.Bookings().GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, stored.PaymentStatus)
	assert.Equal(t, 800.0, ptr.Deref(stored.PaymentAmount))

	history, err := payments.ListTransitions(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.PaymentStatusPaid, history[1].To)
}
