// Package pgerr classifies lib/pq errors for the repositories.
package pgerr

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-TurfBookingService/pkg/dbmetrics"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeSerializationFail   = "40001"
	codeDeadlockDetected    = "40P01"
	classConnection         = "08"
	codeAdminShutdown       = "57P01"
	codeCrashShutdown       = "57P02"
	codeCannotConnectNow    = "57P03"
)

// IsUniqueViolation reports a unique constraint violation, optionally on a specific constraint
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != codeUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// IsForeignKeyViolation reports a foreign key violation
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == codeForeignKeyViolation
}

// IsSerializationFailure reports errors that a serializable transaction may raise under contention
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == codeSerializationFail || string(pqErr.Code) == codeDeadlockDetected
}

// IsUnavailable reports that the database cannot be reached or a transaction could not be opened.
// Context cancellation is the caller giving up and is not classified as unavailability.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, dbmetrics.ErrBeginTx) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		return strings.HasPrefix(code, classConnection) ||
			code == codeAdminShutdown || code == codeCrashShutdown || code == codeCannotConnectNow
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
