package get_free_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/infra/cache"
	"github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/turfs"
	"github.com/m04kA/SMC-TurfBookingService/pkg/logger"
	"github.com/m04kA/SMC-TurfBookingService/pkg/metrics"
	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

var day = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

type ledgerMock struct {
	mock.Mock
}

func (m *ledgerMock) Lookup(ctx context.Context, turfID, courtID int64, date time.Time) ([]types.TimeString, error) {
	args := m.Called(ctx, turfID, courtID, date)
	starts, _ := args.Get(0).([]types.TimeString)
	return starts, args.Error(1)
}

func newStore() *memory.Store {
	store := memory.NewStore()
	store.PutTurf(&domain.Turf{
		ID:                  1,
		OpenTime:            "09:00",
		CloseTime:           "18:00",
		SlotDurationMinutes: 60,
		Status:              domain.TurfStatusActive,
		Courts: []domain.Court{
			{ID: 1, TurfID: 1, Position: 1},
			{ID: 2, TurfID: 1, Position: 2},
		},
	})
	store.PutTurf(&domain.Turf{
		ID:                  2,
		OpenTime:            "18:00",
		CloseTime:           "24:00",
		SlotDurationMinutes: 90,
		Status:              domain.TurfStatusInactive,
		Courts:              []domain.Court{{ID: 3, TurfID: 2, Position: 1}},
	})
	return store
}

func catalog(store *memory.Store) *turfs.Service {
	return turfs.NewService(store.Turfs(), cache.Nop{}, time.Minute, (*metrics.Metrics)(nil), logger.NewNop())
}

func starts(slots []domain.Slot) []types.TimeString {
	res := make([]types.TimeString, len(slots))
	for i, s := range slots {
		res[i] = s.Start
	}
	return res
}

func TestUseCase_Execute(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	_, err := store.Bookings().TryCommit(ctx, &domain.Booking{
		TurfID: 1, CourtID: 1, CustomerID: 1, BookingDate: day,
		Slots:               []types.TimeString{"10:00", "11:00", "17:00"},
		SlotDurationMinutes: 60,
		PaymentStatus:       domain.PaymentStatusNone,
	})
	require.NoError(t, err)

	uc := NewUseCase(catalog(store), store.Bookings(), logger.NewNop())

	resp, err := uc.Execute(ctx, &Request{TurfID: 1, CourtID: 1, Date: day})
	require.NoError(t, err)
	assert.Equal(t, 9, resp.TotalSlots)
	assert.Equal(t, 60, resp.SlotDurationMinutes)
	assert.Equal(t,
		[]types.TimeString{"09:00", "12:00", "13:00", "14:00", "15:00", "16:00"},
		starts(resp.Slots))
	for _, s := range resp.Slots {
		assert.Equal(t, int64(1), s.CourtID)
		assert.Equal(t, day, s.Date)
	}

	resp, err = uc.Execute(ctx, &Request{TurfID: 1, CourtID: 2, Date: day})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 9, "bookings of court 1 do not touch court 2")

	resp, err = uc.Execute(ctx, &Request{TurfID: 1, CourtID: 1, Date: day.AddDate(0, 0, 1)})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 9)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	store := newStore()
	uc := NewUseCase(catalog(store), store.Bookings(), logger.NewNop())

	tests := []struct {
		name    string
		req     *Request
		wantErr error
		kind    error
	}{
		{name: "unknown turf", req: &Request{TurfID: 9, CourtID: 1, Date: day}, wantErr: ErrTurfNotFound, kind: domain.ErrNotFound},
		{name: "foreign court", req: &Request{TurfID: 1, CourtID: 3, Date: day}, wantErr: ErrCourtNotFound, kind: domain.ErrNotFound},
		{name: "inactive turf", req: &Request{TurfID: 2, CourtID: 3, Date: day}, wantErr: ErrTurfInactive, kind: domain.ErrTurfInactive},
		{name: "missing date", req: &Request{TurfID: 1, CourtID: 1}, wantErr: ErrInvalidInput, kind: domain.ErrInvalidSlotRequest},
		{name: "zero court", req: &Request{TurfID: 1, Date: day}, wantErr: ErrInvalidInput, kind: domain.ErrInvalidSlotRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestUseCase_Execute_LedgerUnavailable(t *testing.T) {
	store := newStore()
	ledger := &ledgerMock{}
	ledger.On("Lookup", mock.Anything, int64(1), int64(1), day).
		Return(nil, domain.ErrStorageUnavailable).
		Once()

	uc := NewUseCase(catalog(store), ledger, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{TurfID: 1, CourtID: 1, Date: day})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	ledger.AssertExpectations(t)
}
