package reserve_slots

import (
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

// Config holds the booking rules of the deployment
type Config struct {
	Location       *time.Location // turf wall clock, decides what "today" is
	MaxAdvanceDays int            // 0 = unlimited
	MaxTeamSize    int
}

// Request reserves one or more slots of a single court on a single day
type Request struct {
	TurfID         int64
	CourtID        int64
	CustomerID     int64
	Date           time.Time
	Slots          []string // "HH:MM", need not be contiguous
	Game           string
	TeamSize       int
	IdempotencyKey *string
}

// Response is the committed booking
type Response struct {
	Booking  *domain.Booking
	Replayed bool // the idempotency key matched an earlier commit
}
