package customer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfBookingService/pkg/psqlbuilder"
)

// Repository reads customers
type Repository struct {
	db DBExecutor
}

// NewRepository creates a customer repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID returns a customer by id
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "mobile_number", "area", "created_at").
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		customer  domain.Customer
		createdAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&customer.ID, &customer.Name, &customer.MobileNumber, &customer.Area, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: id=%d", ErrCustomerNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan customer: %v", ErrScanRow, err)
	}
	customer.CreatedAt = createdAt.Time

	return &customer, nil
}
