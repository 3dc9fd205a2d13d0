package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-TurfBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

var bookingColumns = []string{
	"id",
	"turf_id",
	"court_id",
	"customer_id",
	"booking_date",
	"slot_duration_minutes",
	"game",
	"team_size",
	"payment_status",
	"payment_amount",
	"payment_method",
	"payment_failure_reason",
	"idempotency_key",
	"created_at",
	"updated_at",
}

// Repository is the postgres booking ledger.
// Every mutation of a (turf, court, date) partition runs in one transaction holding
// a transaction scoped advisory lock on that partition, so contenders for the same
// court and day are serialized while other partitions commit in parallel.
// The booking_slots primary key backs the no-double-booking invariant.
type Repository struct {
	db        DBExecutor
	txManager TransactionManager
}

// NewRepository creates the ledger repository
func NewRepository(db DBExecutor, txManager TransactionManager) *Repository {
	return &Repository{db: db, txManager: txManager}
}

// TryCommit stores the booking and all of its slot keys, or nothing.
// If any requested slot is taken the returned error is a *domain.SlotUnavailableError
// listing the taken slots.
func (r *Repository) TryCommit(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if len(booking.Slots) == 0 {
		return nil, ErrEmptySlotSet
	}

	candidate := booking.Clone()

	err := r.txManager.Do(ctx, func(txCtx context.Context) error {
		executor := dbmetrics.GetExecutor(txCtx, r.db)

		if err := r.lockPartition(txCtx, executor, candidate.LedgerKey()); err != nil {
			return err
		}

		// a committed key is reported before any slot conflict
		if candidate.IdempotencyKey != nil {
			used, err := r.keyUsed(txCtx, executor, candidate.CustomerID, *candidate.IdempotencyKey)
			if err != nil {
				return err
			}
			if used {
				return fmt.Errorf("%w: customer=%d", ErrDuplicateIdempotencyKey, candidate.CustomerID)
			}
		}

		taken, err := r.takenSlots(txCtx, executor, candidate)
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			return newConflict(candidate, taken)
		}

		if err := r.insertBooking(txCtx, executor, candidate); err != nil {
			return err
		}

		return r.insertSlots(txCtx, executor, candidate)
	})
	if err != nil {
		return nil, r.classifyCommitError(ctx, candidate, err)
	}

	return candidate, nil
}

// Cancel removes the booking and releases its slots in one transaction
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	err := r.txManager.Do(ctx, func(txCtx context.Context) error {
		executor := dbmetrics.GetExecutor(txCtx, r.db)

		query, args, err := psqlbuilder.Select("turf_id", "court_id", "booking_date").
			From("bookings").
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: Cancel - build select query: %v", ErrBuildQuery, err)
		}

		var (
			turfID, courtID int64
			date            sql.NullTime
		)
		err = executor.QueryRowContext(txCtx, query, args...).Scan(&turfID, &courtID, &date)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("%w: Cancel - scan booking: %w", ErrScanRow, err)
		}

		if err := r.lockPartition(txCtx, executor, domain.LedgerKey(turfID, courtID, date.Time)); err != nil {
			return err
		}

		query, args, err = psqlbuilder.Delete("booking_slots").
			Where(squirrel.Eq{"booking_id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: Cancel - build delete slots query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(txCtx, query, args...); err != nil {
			return fmt.Errorf("%w: Cancel - delete slots: %w", ErrExecQuery, err)
		}

		query, args, err = psqlbuilder.Delete("bookings").
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: Cancel - build delete query: %v", ErrBuildQuery, err)
		}

		result, err := executor.ExecContext(txCtx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: Cancel - delete booking: %w", ErrExecQuery, err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: Cancel - get rows affected: %w", ErrExecQuery, err)
		}
		if rowsAffected == 0 {
			// cancelled concurrently between the read and the lock
			return fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
		}

		return nil
	})
	if err != nil {
		if pgerr.IsUnavailable(err) {
			return fmt.Errorf("%w: Cancel - id=%d: %v", ErrStorageUnavailable, id, err)
		}
		return err
	}

	return nil
}

// Lookup returns the occupied slot starts of a court on a date, ascending
func (r *Repository) Lookup(ctx context.Context, turfID, courtID int64, date time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_start::text").
		From("booking_slots").
		Where(squirrel.Eq{
			"turf_id":      turfID,
			"court_id":     courtID,
			"booking_date": date.Format(domain.DateFormat),
		}).
		OrderBy("slot_start ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Lookup - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsUnavailable(err) {
			return nil, fmt.Errorf("%w: Lookup: %v", ErrStorageUnavailable, err)
		}
		return nil, fmt.Errorf("%w: Lookup - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlotStarts(rows, "Lookup")
}

// GetByID returns a booking with its slots
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
	}
	if err != nil {
		if pgerr.IsUnavailable(err) {
			return nil, fmt.Errorf("%w: GetByID: %v", ErrStorageUnavailable, err)
		}
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	if err := r.attachSlots(ctx, executor, []*domain.Booking{booking}); err != nil {
		return nil, err
	}

	return booking, nil
}

// FindByIdempotencyKey returns the booking a customer committed under key
func (r *Repository) FindByIdempotencyKey(ctx context.Context, customerID int64, key string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID, "idempotency_key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByIdempotencyKey - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: customer=%d key=%s", ErrBookingNotFound, customerID, key)
	}
	if err != nil {
		if pgerr.IsUnavailable(err) {
			return nil, fmt.Errorf("%w: FindByIdempotencyKey: %v", ErrStorageUnavailable, err)
		}
		return nil, fmt.Errorf("%w: FindByIdempotencyKey - scan booking: %v", ErrScanRow, err)
	}

	if err := r.attachSlots(ctx, executor, []*domain.Booking{booking}); err != nil {
		return nil, err
	}

	return booking, nil
}

// ListByTurf returns bookings of a turf, optionally for one court and day.
// A single day is ordered by court and first slot, otherwise newest dates come first.
func (r *Repository) ListByTurf(ctx context.Context, filter domain.TurfBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(prefixed("b", bookingColumns)...).
		From("bookings b").
		Where(squirrel.Eq{"b.turf_id": filter.TurfID})

	if filter.CourtID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.court_id": *filter.CourtID})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"b.booking_date": filter.Date.Format(domain.DateFormat)}).
			OrderBy("b.court_id ASC", "(SELECT MIN(s.slot_start) FROM booking_slots s WHERE s.booking_id = b.id) ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("b.booking_date DESC", "b.id DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTurf - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryBookings(ctx, executor, "ListByTurf", query, args)
}

// ListByCustomer returns bookings of a customer, optionally on one turf, newest first
func (r *Repository) ListByCustomer(ctx context.Context, filter domain.CustomerBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": filter.CustomerID}).
		OrderBy("booking_date DESC", "id DESC")

	if filter.TurfID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"turf_id": *filter.TurfID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryBookings(ctx, executor, "ListByCustomer", query, args)
}

func (r *Repository) queryBookings(ctx context.Context, executor DBExecutor, op string, query string, args []interface{}) ([]*domain.Booking, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsUnavailable(err) {
			return nil, fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
		}
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		if pgerr.IsUnavailable(err) {
			return nil, fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
		}
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	if err := r.attachSlots(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// lockPartition takes the transaction scoped advisory lock of a (turf, court, date) key.
// hashtext collisions only serialize two unrelated partitions, they never merge their data.
func (r *Repository) lockPartition(ctx context.Context, executor DBExecutor, key string) error {
	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("pg_advisory_xact_lock(hashtext(?))", key)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: lockPartition - build query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: lockPartition - key=%s: %w", ErrExecQuery, key, err)
	}
	return nil
}

// keyUsed reports whether the customer already committed a booking under key
func (r *Repository) keyUsed(ctx context.Context, executor DBExecutor, customerID int64, key string) (bool, error) {
	query, args, err := psqlbuilder.Select("id").
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID, "idempotency_key": key}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: keyUsed - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: keyUsed - scan: %w", ErrScanRow, err)
	}
	return true, nil
}

// takenSlots returns the requested slots that already belong to a booking, locking their rows
func (r *Repository) takenSlots(ctx context.Context, executor DBExecutor, booking *domain.Booking) ([]types.TimeString, error) {
	query, args, err := psqlbuilder.Select("slot_start::text").
		From("booking_slots").
		Where(squirrel.Eq{
			"turf_id":      booking.TurfID,
			"court_id":     booking.CourtID,
			"booking_date": booking.BookingDate.Format(domain.DateFormat),
			"slot_start":   slotArgs(booking.Slots),
		}).
		OrderBy("slot_start ASC").
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: takenSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: takenSlots - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlotStarts(rows, "takenSlots")
}

func (r *Repository) insertBooking(ctx context.Context, executor DBExecutor, booking *domain.Booking) error {
	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"turf_id",
			"court_id",
			"customer_id",
			"booking_date",
			"slot_duration_minutes",
			"game",
			"team_size",
			"payment_status",
			"idempotency_key",
		).
		Values(
			booking.TurfID,
			booking.CourtID,
			booking.CustomerID,
			booking.BookingDate.Format(domain.DateFormat),
			booking.SlotDurationMinutes,
			booking.Game,
			booking.TeamSize,
			booking.PaymentStatus,
			booking.IdempotencyKey,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertBooking - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt, &updatedAt)
	if err != nil {
		return fmt.Errorf("%w: insertBooking - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time
	return nil
}

func (r *Repository) insertSlots(ctx context.Context, executor DBExecutor, booking *domain.Booking) error {
	date := booking.BookingDate.Format(domain.DateFormat)

	insertBuilder := psqlbuilder.Insert("booking_slots").
		Columns("turf_id", "court_id", "booking_date", "slot_start", "booking_id")
	for _, slot := range booking.Slots {
		insertBuilder = insertBuilder.Values(booking.TurfID, booking.CourtID, date, slot, booking.ID)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertSlots - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertSlots - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

// attachSlots loads the slot starts of every booking in one query
func (r *Repository) attachSlots(ctx context.Context, executor DBExecutor, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Booking, len(bookings))
	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		b.Slots = make([]types.TimeString, 0)
		byID[b.ID] = b
		ids = append(ids, b.ID)
	}

	query, args, err := psqlbuilder.Select("booking_id", "slot_start::text").
		From("booking_slots").
		Where(squirrel.Eq{"booking_id": ids}).
		OrderBy("booking_id ASC", "slot_start ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsUnavailable(err) {
			return fmt.Errorf("%w: attachSlots: %v", ErrStorageUnavailable, err)
		}
		return fmt.Errorf("%w: attachSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bookingID int64
			start     types.TimeString
		)
		if err := rows.Scan(&bookingID, &start); err != nil {
			return fmt.Errorf("%w: attachSlots - scan slot: %v", ErrScanRow, err)
		}
		if b, ok := byID[bookingID]; ok {
			b.Slots = append(b.Slots, start)
		}
	}
	if err := rows.Err(); err != nil {
		if pgerr.IsUnavailable(err) {
			return fmt.Errorf("%w: attachSlots: %v", ErrStorageUnavailable, err)
		}
		return fmt.Errorf("%w: attachSlots - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// classifyCommitError maps a failed commit transaction to the ledger error kinds
func (r *Repository) classifyCommitError(ctx context.Context, booking *domain.Booking, err error) error {
	var conflict *domain.SlotUnavailableError
	switch {
	case errors.As(err, &conflict):
		return conflict

	case pgerr.IsUniqueViolation(err, constraintSlotKey):
		// the advisory lock was bypassed by a writer outside the ledger; report what is taken now
		taken, lookupErr := r.Lookup(ctx, booking.TurfID, booking.CourtID, booking.BookingDate)
		if lookupErr != nil {
			return newConflict(booking, booking.Slots)
		}
		return newConflict(booking, intersect(booking.Slots, taken))

	case pgerr.IsUniqueViolation(err, constraintIdempotencyKey):
		return fmt.Errorf("%w: customer=%d", ErrDuplicateIdempotencyKey, booking.CustomerID)

	case pgerr.IsUnavailable(err):
		return fmt.Errorf("%w: TryCommit - key=%s: %v", ErrStorageUnavailable, booking.LedgerKey(), err)

	default:
		return err
	}
}

func newConflict(booking *domain.Booking, taken []types.TimeString) *domain.SlotUnavailableError {
	return &domain.SlotUnavailableError{
		TurfID:  booking.TurfID,
		CourtID: booking.CourtID,
		Date:    booking.BookingDate.Format(domain.DateFormat),
		Slots:   taken,
	}
}

func intersect(requested, taken []types.TimeString) []types.TimeString {
	set := make(map[int]struct{}, len(taken))
	for _, t := range taken {
		set[t.Minutes()] = struct{}{}
	}
	res := make([]types.TimeString, 0)
	for _, r := range requested {
		if _, ok := set[r.Minutes()]; ok {
			res = append(res, r)
		}
	}
	if len(res) == 0 {
		return requested
	}
	return res
}

func slotArgs(slots []types.TimeString) []string {
	res := make([]string, len(slots))
	for i, s := range slots {
		res[i] = s.String()
	}
	return res
}

func prefixed(alias string, columns []string) []string {
	res := make([]string, len(columns))
	for i, c := range columns {
		res[i] = alias + "." + c
	}
	return res
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		bookingDate          sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.TurfID,
		&booking.CourtID,
		&booking.CustomerID,
		&bookingDate,
		&booking.SlotDurationMinutes,
		&booking.Game,
		&booking.TeamSize,
		&booking.PaymentStatus,
		&booking.PaymentAmount,
		&booking.PaymentMethod,
		&booking.PaymentFailureReason,
		&booking.IdempotencyKey,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.BookingDate = domain.DateOnly(bookingDate.Time)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func scanSlotStarts(rows *sql.Rows, op string) ([]types.TimeString, error) {
	starts := make([]types.TimeString, 0)
	for rows.Next() {
		var start types.TimeString
		if err := rows.Scan(&start); err != nil {
			return nil, fmt.Errorf("%w: %s - scan slot: %v", ErrScanRow, op, err)
		}
		starts = append(starts, start)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}
	return starts, nil
}
