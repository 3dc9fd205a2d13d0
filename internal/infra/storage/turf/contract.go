package turf

import "github.com/m04kA/SMC-TurfBookingService/pkg/dbmetrics"

// Reuse the dbmetrics interfaces
type DBExecutor = dbmetrics.DBExecutor
