package cancel_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TurfBookingService/pkg/logger"
	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

var day = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

type ledgerMock struct {
	mock.Mock
}

func (m *ledgerMock) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *ledgerMock) Cancel(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func TestUseCase_Execute(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	booking, err := store.Bookings().TryCommit(ctx, &domain.Booking{
		TurfID: 1, CourtID: 1, CustomerID: 1, BookingDate: day,
		Slots:               []types.TimeString{"10:00", "14:00"},
		SlotDurationMinutes: 60,
		PaymentStatus:       domain.PaymentStatusNone,
	})
	require.NoError(t, err)

	uc := NewUseCase(store.Bookings(), logger.NewNop())

	resp, err := uc.Execute(ctx, &Request{BookingID: booking.ID})
	require.NoError(t, err)
	assert.Equal(t, booking.ID, resp.BookingID)
	assert.Equal(t, []types.TimeString{"10:00", "14:00"}, resp.ReleasedSlots)

	taken, err := store.Bookings().Lookup(ctx, 1, 1, day)
	require.NoError(t, err)
	assert.Empty(t, taken)

	_, err = uc.Execute(ctx, &Request{BookingID: booking.ID})
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	booking := &domain.Booking{ID: 7, TurfID: 1, CourtID: 1, BookingDate: day, Slots: []types.TimeString{"10:00"}}

	tests := []struct {
		name    string
		setup   func(m *ledgerMock)
		id      int64
		wantErr error
	}{
		{
			name:    "invalid id",
			setup:   func(m *ledgerMock) {},
			id:      0,
			wantErr: ErrInvalidInput,
		},
		{
			name: "cancelled concurrently",
			setup: func(m *ledgerMock) {
				m.On("GetByID", mock.Anything, int64(7)).Return(booking, nil).Once()
				m.On("Cancel", mock.Anything, int64(7)).Return(domain.ErrNotFound).Once()
			},
			id:      7,
			wantErr: ErrBookingNotFound,
		},
		{
			name: "storage unavailable",
			setup: func(m *ledgerMock) {
				m.On("GetByID", mock.Anything, int64(7)).Return(booking, nil).Once()
				m.On("Cancel", mock.Anything, int64(7)).Return(domain.ErrStorageUnavailable).Once()
			},
			id:      7,
			wantErr: ErrStorageUnavailable,
		},
		{
			name: "unexpected error",
			setup: func(m *ledgerMock) {
				m.On("GetByID", mock.Anything, int64(7)).Return(nil, errors.New("boom")).Once()
			},
			id:      7,
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &ledgerMock{}
			tt.setup(ledger)

			uc := NewUseCase(ledger, logger.NewNop())
			_, err := uc.Execute(context.Background(), &Request{BookingID: tt.id})

			assert.ErrorIs(t, err, tt.wantErr)
			ledger.AssertExpectations(t)
		})
	}
}
