package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-TurfBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfBookingService/pkg/psqlbuilder"
)

// Repository persists payment status changes of bookings
type Repository struct {
	db        DBExecutor
	txManager TransactionManager
}

// NewRepository creates a payment repository
func NewRepository(db DBExecutor, txManager TransactionManager) *Repository {
	return &Repository{db: db, txManager: txManager}
}

// Transition moves the booking from t.From to t.To if the stored status still equals t.From,
// and records the audit row in the same transaction. On success t.CreatedAt is set.
func (r *Repository) Transition(ctx context.Context, t *domain.PaymentTransition) error {
	err := r.txManager.Do(ctx, func(txCtx context.Context) error {
		executor := dbmetrics.GetExecutor(txCtx, r.db)

		updateBuilder := psqlbuilder.Update("bookings").
			Set("payment_status", t.To).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": t.BookingID, "payment_status": t.From})

		if t.Amount != nil {
			updateBuilder = updateBuilder.Set("payment_amount", *t.Amount)
		}
		if t.Method != nil {
			updateBuilder = updateBuilder.Set("payment_method", *t.Method)
		}
		if t.Reason != nil {
			updateBuilder = updateBuilder.Set("payment_failure_reason", *t.Reason)
		}

		query, args, err := updateBuilder.ToSql()
		if err != nil {
			return fmt.Errorf("%w: Transition - build update query: %v", ErrBuildQuery, err)
		}

		result, err := executor.ExecContext(txCtx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: Transition - execute update: %w", ErrExecQuery, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: Transition - get rows affected: %w", ErrExecQuery, err)
		}
		if rowsAffected == 0 {
			return r.explainMiss(txCtx, executor, t)
		}

		query, args, err = psqlbuilder.Insert("payment_transitions").
			Columns("booking_id", "from_status", "to_status", "amount", "method", "reason").
			Values(t.BookingID, t.From, t.To, t.Amount, t.Method, t.Reason).
			Suffix("RETURNING created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: Transition - build insert query: %v", ErrBuildQuery, err)
		}

		var createdAt sql.NullTime
		if err := executor.QueryRowContext(txCtx, query, args...).Scan(&createdAt); err != nil {
			return fmt.Errorf("%w: Transition - insert audit row: %w", ErrExecQuery, err)
		}
		t.CreatedAt = createdAt.Time

		return nil
	})
	if err != nil {
		if pgerr.IsUnavailable(err) {
			return fmt.Errorf("%w: Transition - booking=%d: %v", ErrStorageUnavailable, t.BookingID, err)
		}
		return err
	}

	return nil
}

// ListTransitions returns the audit trail of a booking, oldest first
func (r *Repository) ListTransitions(ctx context.Context, bookingID int64) ([]domain.PaymentTransition, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("booking_id", "from_status", "to_status", "amount", "method", "reason", "created_at").
		From("payment_transitions").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListTransitions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTransitions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	transitions := make([]domain.PaymentTransition, 0)
	for rows.Next() {
		var (
			t         domain.PaymentTransition
			createdAt sql.NullTime
		)
		if err := rows.Scan(&t.BookingID, &t.From, &t.To, &t.Amount, &t.Method, &t.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListTransitions - scan row: %v", ErrScanRow, err)
		}
		t.CreatedAt = createdAt.Time
		transitions = append(transitions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTransitions - rows error: %v", ErrScanRow, err)
	}

	return transitions, nil
}

// explainMiss tells a missing booking apart from a stale source status
func (r *Repository) explainMiss(ctx context.Context, executor DBExecutor, t *domain.PaymentTransition) error {
	query, args, err := psqlbuilder.Select("payment_status").
		From("bookings").
		Where(squirrel.Eq{"id": t.BookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Transition - build status query: %v", ErrBuildQuery, err)
	}

	var current domain.PaymentStatus
	err = executor.QueryRowContext(ctx, query, args...).Scan(&current)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: id=%d", ErrBookingNotFound, t.BookingID)
	}
	if err != nil {
		return fmt.Errorf("%w: Transition - scan status: %w", ErrScanRow, err)
	}

	return fmt.Errorf("%w: booking=%d current=%s expected=%s target=%s",
		ErrStatusMismatch, t.BookingID, current, t.From, t.To)
}
