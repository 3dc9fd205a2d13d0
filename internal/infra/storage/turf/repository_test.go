package turf

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

var turfRowColumns = []string{
	"id", "name", "address", "area", "open_time", "close_time",
	"slot_duration_minutes", "games", "status", "created_at", "updated_at",
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM turfs WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(turfRowColumns).
			AddRow(int64(1), "Green Field", "12 Lake Road", "Koramangala", "09:00:00", "18:00:00",
				60, "{football,cricket}", "active", nil, nil))

	mock.ExpectQuery(regexp.QuoteMeta("FROM courts WHERE turf_id IN ($1) ORDER BY turf_id ASC, position ASC, id ASC")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "turf_id", "name", "position"}).
			AddRow(int64(1), int64(1), "A", 1).
			AddRow(int64(2), int64(1), "B", 2))

	turf, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("09:00"), turf.OpenTime)
	assert.Equal(t, types.TimeString("18:00"), turf.CloseTime)
	assert.Equal(t, []string{"football", "cricket"}, turf.Games)
	assert.Equal(t, domain.TurfStatusActive, turf.Status)
	require.Len(t, turf.Courts, 2)
	assert.Equal(t, "B", turf.Courts[1].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM turfs WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(turfRowColumns))

	_, err = NewRepository(db).GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_ConnectionLost(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM turfs WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnError(&pq.Error{Code: "57P01"})

	_, err = NewRepository(db).GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM turfs ORDER BY id ASC")).
		WillReturnRows(sqlmock.NewRows(turfRowColumns).
			AddRow(int64(1), "Green Field", "", "", "09:00:00", "18:00:00", 60, "{}", "active", nil, nil).
			AddRow(int64(2), "Night Owls", "", "", "18:00:00", "24:00:00", 90, "{football}", "inactive", nil, nil))

	mock.ExpectQuery(regexp.QuoteMeta("FROM courts WHERE turf_id IN ($1,$2)")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "turf_id", "name", "position"}).
			AddRow(int64(3), int64(2), "Main", 1))

	turfs, err := NewRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, turfs, 2)

	assert.Empty(t, turfs[0].Courts)
	assert.Equal(t, types.TimeString("24:00"), turfs[1].CloseTime)
	require.Len(t, turfs[1].Courts, 1)
	assert.Equal(t, int64(3), turfs[1].Courts[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateSchedule(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	schedule := domain.TurfSchedule{
		OpenTime:            "06:00",
		CloseTime:           "22:00",
		SlotDurationMinutes: 30,
		Status:              domain.TurfStatusActive,
	}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE turfs SET open_time = $1, close_time = $2, slot_duration_minutes = $3, status = $4, updated_at = NOW() WHERE id = $5")).
		WithArgs("06:00", "22:00", 30, "active", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE turfs")).
		WithArgs("06:00", "22:00", 30, "active", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.UpdateSchedule(context.Background(), 1, schedule))

	err = repo.UpdateSchedule(context.Background(), 7, schedule)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}
