package get_free_slots

import (
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

// Request selects one court on one day
type Request struct {
	TurfID  int64
	CourtID int64
	Date    time.Time
}

// Response lists the free slots in chronological order
type Response struct {
	TurfID              int64
	CourtID             int64
	Date                time.Time
	SlotDurationMinutes int
	TotalSlots          int           // size of the court grid
	Slots               []domain.Slot // free slots only
}
