package cancel_reservation

import (
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

// Request cancels one booking
type Request struct {
	BookingID int64
}

// Response describes what was released
type Response struct {
	BookingID     int64
	TurfID        int64
	CourtID       int64
	Date          time.Time
	ReleasedSlots []types.TimeString
	PaymentStatus domain.PaymentStatus // status at the moment of cancellation
}
