package paymentevents

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/payments"
	"github.com/m04kA/SMC-TurfBookingService/pkg/logger"
	"github.com/m04kA/SMC-TurfBookingService/pkg/metrics"
	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

type applierMock struct {
	mock.Mock
}

func (m *applierMock) Apply(ctx context.Context, bookingID int64, u payments.Update) (*domain.Booking, bool, error) {
	args := m.Called(ctx, bookingID, u)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Bool(1), args.Error(2)
}

func TestConsumer_HandleDelivery_AgainstTracker(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	booking, err := store.Bookings().TryCommit(ctx, &domain.Booking{
		TurfID:              1,
		CourtID:             1,
		CustomerID:          1,
		BookingDate:         time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Slots:               []types.TimeString{"10:00"},
		SlotDurationMinutes: 60,
		Game:                "football",
		TeamSize:            5,
		PaymentStatus:       domain.PaymentStatusNone,
	})
	require.NoError(t, err)

	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())
	tracker := payments.NewService(store.Payments(), store.Bookings(), nil, m, logger.NewNop())
	_, err = tracker.InitPending(ctx, booking.ID)
	require.NoError(t, err)

	consumer := NewConsumer(Config{}, tracker, m, logger.NewNop())
	paid := []byte(fmt.Sprintf(`{"booking_id":%d,"amount":1000,"method":"upi"}`, booking.ID))

	assert.Equal(t, ResultApplied, consumer.HandleDelivery(ctx, RKPaymentPaid, paid))
	assert.Equal(t, ResultDuplicate, consumer.HandleDelivery(ctx, RKPaymentPaid, paid))

	failed := []byte(fmt.Sprintf(`{"booking_id":%d,"reason":"late decline"}`, booking.ID))
	assert.Equal(t, ResultRejected, consumer.HandleDelivery(ctx, RKPaymentFailed, failed), "paid -> failed is not allowed")

	stored, err := store.Bookings().GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, stored.PaymentStatus)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PaymentEventsTotal.WithLabelValues(RKPaymentPaid, string(ResultDuplicate))))
}

func TestConsumer_HandleDelivery_PaidBeforePending(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	booking, err := store.Bookings().TryCommit(ctx, &domain.Booking{
		TurfID:              1,
		CourtID:             1,
		CustomerID:          1,
		BookingDate:         time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Slots:               []types.TimeString{"10:00"},
		SlotDurationMinutes: 60,
		Game:                "football",
		TeamSize:            5,
		PaymentStatus:       domain.PaymentStatusNone,
	})
	require.NoError(t, err)

	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())
	tracker := payments.NewService(store.Payments(), store.Bookings(), nil, m, logger.NewNop())
	consumer := NewConsumer(Config{}, tracker, m, logger.NewNop())
	paid := []byte(fmt.Sprintf(`{"booking_id":%d,"amount":1000,"method":"upi"}`, booking.ID))

	// reservation has committed the slots but not opened the payment yet
	assert.Equal(t, ResultRequeued, consumer.HandleDelivery(ctx, RKPaymentPaid, paid))

	_, err = tracker.InitPending(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, ResultApplied, consumer.HandleDelivery(ctx, RKPaymentPaid, paid))

	stored, err := store.Bookings().GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, stored.PaymentStatus)
}

func TestConsumer_HandleDelivery_Results(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		routingKey string
		body       string
		applyErr   error
		callsApply bool
		want       Result
	}{
		{name: "unknown key", routingKey: "payment.disputed", body: `{"booking_id":1}`, want: ResultRejected},
		{name: "malformed body", routingKey: RKPaymentPaid, body: `{`, want: ResultRejected},
		{name: "missing booking id", routingKey: RKPaymentPaid, body: `{}`, want: ResultRejected},
		{name: "booking gone", routingKey: RKPaymentRefunded, body: `{"booking_id":1}`, applyErr: payments.ErrBookingNotFound, callsApply: true, want: ResultRejected},
		{name: "storage down", routingKey: RKPaymentRefunded, body: `{"booking_id":1}`, applyErr: payments.ErrStorageUnavailable, callsApply: true, want: ResultRequeued},
		{name: "payment not opened", routingKey: RKPaymentPaid, body: `{"booking_id":1,"amount":10,"method":"upi"}`, applyErr: payments.ErrPaymentNotOpened, callsApply: true, want: ResultRequeued},
		{name: "invalid transition", routingKey: RKPaymentRefunded, body: `{"booking_id":1}`, applyErr: payments.ErrInvalidTransition, callsApply: true, want: ResultRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			applier := &applierMock{}
			if tt.callsApply {
				applier.On("Apply", mock.Anything, int64(1), mock.AnythingOfType("payments.Update")).
					Return(nil, false, tt.applyErr).
					Once()
			}

			consumer := NewConsumer(Config{}, applier, (*metrics.Metrics)(nil), logger.NewNop())
			assert.Equal(t, tt.want, consumer.HandleDelivery(ctx, tt.routingKey, []byte(tt.body)))
			applier.AssertExpectations(t)
		})
	}
}
