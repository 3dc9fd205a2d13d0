package turf

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-TurfBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfBookingService/pkg/psqlbuilder"
)

var turfColumns = []string{
	"id",
	"name",
	"address",
	"area",
	"open_time::text",
	"close_time::text",
	"slot_duration_minutes",
	"games",
	"status",
	"created_at",
	"updated_at",
}

// Repository reads turfs and their courts and edits operating hours
type Repository struct {
	db DBExecutor
}

// NewRepository creates a turf repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID returns a turf with its courts ordered by position
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Turf, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(turfColumns...).
		From("turfs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	turf, err := scanTurf(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: id=%d", ErrTurfNotFound, id)
	}
	if err != nil {
		if pgerr.IsUnavailable(err) {
			return nil, fmt.Errorf("%w: GetByID: %v", ErrStorageUnavailable, err)
		}
		return nil, fmt.Errorf("%w: GetByID - scan turf: %v", ErrScanRow, err)
	}

	courts, err := r.courtsByTurf(ctx, executor, []int64{id})
	if err != nil {
		return nil, err
	}
	if c, ok := courts[id]; ok {
		turf.Courts = c
	}

	return turf, nil
}

// List returns all turfs ordered by id, each with its courts
func (r *Repository) List(ctx context.Context) ([]*domain.Turf, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(turfColumns...).
		From("turfs").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsUnavailable(err) {
			return nil, fmt.Errorf("%w: List: %v", ErrStorageUnavailable, err)
		}
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	turfs := make([]*domain.Turf, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		turf, err := scanTurf(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan turf: %v", ErrScanRow, err)
		}
		turfs = append(turfs, turf)
		ids = append(ids, turf.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return turfs, nil
	}

	courts, err := r.courtsByTurf(ctx, executor, ids)
	if err != nil {
		return nil, err
	}
	for _, turf := range turfs {
		if c, ok := courts[turf.ID]; ok {
			turf.Courts = c
		}
	}

	return turfs, nil
}

// UpdateSchedule changes operating hours, slot duration and status
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, schedule domain.TurfSchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("turfs").
		Set("open_time", schedule.OpenTime).
		Set("close_time", schedule.CloseTime).
		Set("slot_duration_minutes", schedule.SlotDurationMinutes).
		Set("status", schedule.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: id=%d", ErrTurfNotFound, id)
	}

	return nil
}

func (r *Repository) courtsByTurf(ctx context.Context, executor DBExecutor, turfIDs []int64) (map[int64][]domain.Court, error) {
	query, args, err := psqlbuilder.Select("id", "turf_id", "name", "position").
		From("courts").
		Where(squirrel.Eq{"turf_id": turfIDs}).
		OrderBy("turf_id ASC", "position ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: courtsByTurf - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: courtsByTurf - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.Court, len(turfIDs))
	for rows.Next() {
		var c domain.Court
		if err := rows.Scan(&c.ID, &c.TurfID, &c.Name, &c.Position); err != nil {
			return nil, fmt.Errorf("%w: courtsByTurf - scan court: %v", ErrScanRow, err)
		}
		result[c.TurfID] = append(result[c.TurfID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: courtsByTurf - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTurf(row rowScanner) (*domain.Turf, error) {
	var (
		turf                 domain.Turf
		games                pq.StringArray
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&turf.ID,
		&turf.Name,
		&turf.Address,
		&turf.Area,
		&turf.OpenTime,
		&turf.CloseTime,
		&turf.SlotDurationMinutes,
		&games,
		&turf.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	turf.Games = []string(games)
	turf.CreatedAt = createdAt.Time
	turf.UpdatedAt = updatedAt.Time
	turf.Courts = []domain.Court{}

	return &turf, nil
}
