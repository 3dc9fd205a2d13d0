package reserve_slots

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	reserveSlots "github.com/m04kA/SMC-TurfBookingService/internal/usecase/reserve_slots"
)

// ReserveRequest HTTP request model
type ReserveRequest struct {
	TurfID      int64    `json:"turfId" validate:"required,gt=0"`
	CourtID     int64    `json:"courtId" validate:"required,gt=0"`
	CustomerID  int64    `json:"customerId" validate:"required,gt=0"`
	BookingDate string   `json:"bookingDate" validate:"required,datetime=2006-01-02"` // "2025-10-15"
	Slots       []string `json:"slots" validate:"required,min=1,max=96,dive,required"` // ["10:00", "11:00"]
	Game        string   `json:"game" validate:"required,max=50"`
	TeamSize    int      `json:"teamSize" validate:"required,gt=0"`
}

// ToUseCaseRequest converts the HTTP request into the use case model
func (r *ReserveRequest) ToUseCaseRequest(idempotencyKey string) (*reserveSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	req := &reserveSlots.Request{
		TurfID:     r.TurfID,
		CourtID:    r.CourtID,
		CustomerID: r.CustomerID,
		Date:       date,
		Slots:      r.Slots,
		Game:       r.Game,
		TeamSize:   r.TeamSize,
	}
	if key := strings.TrimSpace(idempotencyKey); key != "" {
		req.IdempotencyKey = &key
	}
	return req, nil
}
