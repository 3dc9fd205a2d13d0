package payment

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfBookingService/pkg/ptr"
	"github.com/m04kA/SMC-TurfBookingService/pkg/txmanager"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := dbmetrics.Wrap(db, nil, "test")
	return NewRepository(wrapped, txmanager.NewTransactionManager(wrapped)), mock
}

func TestRepository_Transition(t *testing.T) {
	repo, mock := newTestRepository(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET payment_status = $1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payment_transitions")).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
	mock.ExpectCommit()

	tr := &domain.PaymentTransition{
		BookingID: 42,
		From:      domain.PaymentStatusPending,
		To:        domain.PaymentStatusPaid,
		Amount:    ptr.Ptr(1200.0),
		Method:    ptr.Ptr("upi"),
	}

	require.NoError(t, repo.Transition(context.Background(), tr))
	assert.Equal(t, now, tr.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Transition_StaleStatus(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET payment_status = $1")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT payment_status FROM bookings WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"payment_status"}).AddRow("paid"))
	mock.ExpectRollback()

	err := repo.Transition(context.Background(), &domain.PaymentTransition{
		BookingID: 42,
		From:      domain.PaymentStatusNone,
		To:        domain.PaymentStatusPending,
	})
	assert.ErrorIs(t, err, ErrStatusMismatch)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Transition_NotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT payment_status FROM bookings")).
		WillReturnRows(sqlmock.NewRows([]string{"payment_status"}))
	mock.ExpectRollback()

	err := repo.Transition(context.Background(), &domain.PaymentTransition{
		BookingID: 42,
		From:      domain.PaymentStatusPending,
		To:        domain.PaymentStatusFailed,
		Reason:    ptr.Ptr("card declined"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListTransitions(t *testing.T) {
	repo, mock := newTestRepository(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM payment_transitions WHERE booking_id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"booking_id", "from_status", "to_status", "amount", "method", "reason", "created_at"}).
			AddRow(int64(42), "none", "pending", nil, nil, nil, now).
			AddRow(int64(42), "pending", "paid", 1200.0, "upi", nil, now))

	got, err := repo.ListTransitions(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.PaymentStatusPending, got[0].To)
	assert.Nil(t, got[0].Amount)
	require.NotNil(t, got[1].Amount)
	assert.Equal(t, 1200.0, *got[1].Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
