package cancel_reservation

import (
	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	cancelReservation "github.com/m04kA/SMC-TurfBookingService/internal/usecase/cancel_reservation"
)

// CancelResponse HTTP response model
type CancelResponse struct {
	BookingID     int64    `json:"bookingId"`
	TurfID        int64    `json:"turfId"`
	CourtID       int64    `json:"courtId"`
	BookingDate   string   `json:"bookingDate"`
	ReleasedSlots []string `json:"releasedSlots"`
	PaymentStatus string   `json:"paymentStatus"`
}

// FromUseCaseResponse converts the use case result into the HTTP response
func FromUseCaseResponse(resp *cancelReservation.Response) *CancelResponse {
	slots := make([]string, len(resp.ReleasedSlots))
	for i, s := range resp.ReleasedSlots {
		slots[i] = s.String()
	}

	return &CancelResponse{
		BookingID:     resp.BookingID,
		TurfID:        resp.TurfID,
		CourtID:       resp.CourtID,
		BookingDate:   resp.Date.Format(domain.DateFormat),
		ReleasedSlots: slots,
		PaymentStatus: string(resp.PaymentStatus),
	}
}
