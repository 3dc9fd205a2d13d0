package payments

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TurfBookingService/internal/integrations/paymentgateway"
	"github.com/m04kA/SMC-TurfBookingService/pkg/logger"
	"github.com/m04kA/SMC-TurfBookingService/pkg/metrics"
	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

type gatewayMock struct {
	mock.Mock
}

func (m *gatewayMock) GetPaymentStatus(ctx context.Context, bookingID int64) (*paymentgateway.Payment, error) {
	args := m.Called(ctx, bookingID)
	if p, ok := args.Get(0).(*paymentgateway.Payment); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type fixture struct {
	svc     *Service
	gateway *gatewayMock
	metrics *metrics.Metrics
	booking *domain.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	booking, err := store.Bookings().TryCommit(context.Background(), &domain.Booking{
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

	gw := &gatewayMock{}
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())

	return &fixture{
		svc:     NewService(store.Payments(), store.Bookings(), gw, m, logger.NewNop()),
		gateway: gw,
		metrics: m,
		booking: booking,
	}
}

func TestService_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.booking.ID

	b, err := f.svc.InitPending(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, b.PaymentStatus)

	b, err = f.svc.MarkPaid(ctx, id, 1500, "card")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, b.PaymentStatus)
	assert.Equal(t, 1500.0, *b.PaymentAmount)
	assert.Equal(t, "card", *b.PaymentMethod)

	b, err = f.svc.Refund(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusRefunded, b.PaymentStatus)

	history, err := f.svc.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, domain.PaymentStatusNone, history[0].From)
	assert.Equal(t, domain.PaymentStatusRefunded, history[2].To)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.PaymentTransitionsTotal.WithLabelValues("pending", "paid")))
}

func TestService_RejectsInvalidTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.booking.ID

	_, err := f.svc.MarkPaid(ctx, id, 100, "cash")
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition, "none -> paid")

	_, err = f.svc.InitPending(ctx, id)
	require.NoError(t, err)
	_, err = f.svc.MarkPaid(ctx, id, 100, "cash")
	require.NoError(t, err)

	_, err = f.svc.InitPending(ctx, id)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition, "paid -> pending")

	_, err = f.svc.MarkFailed(ctx, id, "card declined")
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition, "paid -> failed")
}

func TestService_MarkFailed_KeepsSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.booking.ID

	_, err := f.svc.InitPending(ctx, id)
	require.NoError(t, err)

	b, err := f.svc.MarkFailed(ctx, id, "card declined")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusFailed, b.PaymentStatus)
	assert.Equal(t, []types.TimeString{"10:00"}, b.Slots)

	_, err = f.svc.Refund(ctx, id)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
}

func TestService_InputValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.MarkPaid(ctx, f.booking.ID, 0, "cash")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.MarkPaid(ctx, f.booking.ID, 10, "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.MarkFailed(ctx, f.booking.ID, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.InitPending(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Apply_Duplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.booking.ID

	_, err := f.svc.InitPending(ctx, id)
	require.NoError(t, err)

	b, changed, err := f.svc.Apply(ctx, id, Update{Status: domain.PaymentStatusPaid, Amount: 900, Method: "upi"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.PaymentStatusPaid, b.PaymentStatus)

	b, changed, err = f.svc.Apply(ctx, id, Update{Status: domain.PaymentStatusPaid, Amount: 900, Method: "upi"})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, domain.PaymentStatusPaid, b.PaymentStatus)
}

func TestService_Apply_BeforePaymentOpened(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.booking.ID

	_, changed, err := f.svc.Apply(ctx, id, Update{Status: domain.PaymentStatusPaid, Amount: 900, Method: "upi"})
	assert.ErrorIs(t, err, ErrPaymentNotOpened)
	assert.NotErrorIs(t, err, domain.ErrInvalidStatusTransition)
	assert.False(t, changed)

	_, err = f.svc.InitPending(ctx, id)
	require.NoError(t, err)

	b, changed, err := f.svc.Apply(ctx, id, Update{Status: domain.PaymentStatusPaid, Amount: 900, Method: "upi"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.PaymentStatusPaid, b.PaymentStatus)
}

func TestService_Reconcile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.booking.ID

	_, err := f.svc.InitPending(ctx, id)
	require.NoError(t, err)

	f.gateway.On("GetPaymentStatus", mock.Anything, id).
		Return(&paymentgateway.Payment{BookingID: id, Status: paymentgateway.StatusFailed, FailureReason: "insufficient funds"}, nil).
		Once()

	b, err := f.svc.Reconcile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusFailed, b.PaymentStatus)
	assert.Equal(t, "insufficient funds", *b.PaymentFailureReason)

	f.gateway.On("GetPaymentStatus", mock.Anything, id).
		Return(nil, paymentgateway.ErrUnavailable).
		Once()

	_, err = f.svc.Reconcile(ctx, id)
	assert.ErrorIs(t, err, ErrGatewayUnavailable)

	f.gateway.AssertExpectations(t)
}
