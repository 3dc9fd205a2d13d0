package booking

import (
	"context"

	"github.com/m04kA/SMC-TurfBookingService/pkg/dbmetrics"
)

// Reuse the dbmetrics interfaces
type DBExecutor = dbmetrics.DBExecutor

// TransactionManager runs ledger mutations inside one transaction
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
