package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/SMC-TurfBookingService/pkg/metrics"
)

const defaultStatsInterval = 15 * time.Second

// DB wraps *sql.DB and records a latency sample for every query
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
	name    string
}

// Wrap returns an instrumented DB without the pool stats loop
func Wrap(db *sql.DB, m *metrics.Metrics, name string) *DB {
	return &DB{db: db, metrics: m, name: name}
}

// WrapWithDefault wraps db and starts publishing pool stats until stopCh is closed
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, name string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m, name)
	go wrapped.collectPoolStats(defaultStatsInterval, stopCh)
	return wrapped
}

// Unwrap returns the underlying pool
func (d *DB) Unwrap() *sql.DB {
	return d.db
}

// ExecContext implements DBExecutor
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.metrics.RecordDBQuery(operation(query), time.Since(start), err)
	return res, err
}

// QueryContext implements DBExecutor
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.metrics.RecordDBQuery(operation(query), time.Since(start), err)
	return rows, err
}

// QueryRowContext implements DBExecutor. Scan errors are not visible here.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.metrics.RecordDBQuery(operation(query), time.Since(start), row.Err())
	return row
}

// BeginTx opens an instrumented transaction
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	start := time.Now()
	tx, err := d.db.BeginTx(ctx, opts)
	d.metrics.RecordDBQuery("BEGIN", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &SqlTxWrapper{tx: tx, metrics: d.metrics}, nil
}

// PingContext checks the connection
func (d *DB) PingContext(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	if d.metrics == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		d.publishPoolStats()
		select {
		case <-ticker.C:
		case <-stopCh:
			return
		}
	}
}

func (d *DB) publishPoolStats() {
	stats := d.db.Stats()
	d.metrics.DBOpenConnections.WithLabelValues(d.name).Set(float64(stats.OpenConnections))
	d.metrics.DBInUseConnections.WithLabelValues(d.name).Set(float64(stats.InUse))
	d.metrics.DBIdleConnections.WithLabelValues(d.name).Set(float64(stats.Idle))
	d.metrics.DBWaitCount.WithLabelValues(d.name).Set(float64(stats.WaitCount))
	d.metrics.DBWaitDurationTotal.WithLabelValues(d.name).Set(stats.WaitDuration.Seconds())
}

// SqlTxWrapper instruments queries issued inside a transaction
type SqlTxWrapper struct {
	tx      *sql.Tx
	metrics *metrics.Metrics
}

// ExecContext implements DBExecutor
func (t *SqlTxWrapper) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.metrics.RecordDBQuery(operation(query), time.Since(start), err)
	return res, err
}

// QueryContext implements DBExecutor
func (t *SqlTxWrapper) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.metrics.RecordDBQuery(operation(query), time.Since(start), err)
	return rows, err
}

// QueryRowContext implements DBExecutor
func (t *SqlTxWrapper) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.metrics.RecordDBQuery(operation(query), time.Since(start), row.Err())
	return row
}

// Commit commits the transaction
func (t *SqlTxWrapper) Commit() error {
	start := time.Now()
	err := t.tx.Commit()
	t.metrics.RecordDBQuery("COMMIT", time.Since(start), err)
	return err
}

// Rollback aborts the transaction
func (t *SqlTxWrapper) Rollback() error {
	start := time.Now()
	err := t.tx.Rollback()
	if err == sql.ErrTxDone {
		return err
	}
	t.metrics.RecordDBQuery("ROLLBACK", time.Since(start), err)
	return err
}

// operation extracts the leading SQL verb for labelling
func operation(query string) string {
	q := strings.TrimSpace(query)
	if i := strings.IndexAny(q, " \n\t("); i > 0 {
		q = q[:i]
	}
	op := strings.ToUpper(q)
	switch op {
	case "SELECT", "INSERT", "UPDATE", "DELETE", "WITH":
		return op
	default:
		return "OTHER"
	}
}
