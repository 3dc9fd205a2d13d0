package models

import (
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

// Request models

// TurfBookingsRequest selects the bookings of a turf
type TurfBookingsRequest struct {
	TurfID  int64
	CourtID *int64
	Date    *time.Time // single day, optional
}

// ToDomainFilter converts the request into a storage filter
func (r *TurfBookingsRequest) ToDomainFilter() domain.TurfBookingsFilter {
	return domain.TurfBookingsFilter{
		TurfID:  r.TurfID,
		CourtID: r.CourtID,
		Date:    r.Date,
	}
}

// CustomerRequest selects a customer and optionally narrows their bookings to one turf
type CustomerRequest struct {
	CustomerID int64
	TurfID     *int64
}

// Response models

// PaymentResponse is the payment part of a booking
type PaymentResponse struct {
	Status        string   `json:"status"`
	Amount        *float64 `json:"amount,omitempty"`
	Method        *string  `json:"method,omitempty"`
	FailureReason *string  `json:"failureReason,omitempty"`
}

// PaymentTransitionResponse is one audit entry
type PaymentTransitionResponse struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Amount    *float64  `json:"amount,omitempty"`
	Method    *string   `json:"method,omitempty"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BookingResponse is a committed booking
type BookingResponse struct {
	ID                  int64                       `json:"id"`
	TurfID              int64                       `json:"turfId"`
	CourtID             int64                       `json:"courtId"`
	CustomerID          int64                       `json:"customerId"`
	CustomerName        string                      `json:"customerName,omitempty"`
	BookingDate         string                      `json:"bookingDate"` // "2025-10-15"
	Slots               []string                    `json:"slots"`       // ["10:00", "11:00"]
	SlotDurationMinutes int                         `json:"slotDurationMinutes"`
	TotalMinutes        int                         `json:"totalMinutes"`
	Game                string                      `json:"game"`
	TeamSize            int                         `json:"teamSize"`
	Payment             PaymentResponse             `json:"payment"`
	PaymentHistory      []PaymentTransitionResponse `json:"paymentHistory,omitempty"`
	CreatedAt           time.Time                   `json:"createdAt"`
	UpdatedAt           time.Time                   `json:"updatedAt"`
}

// BookingListResponse is a list of bookings
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// CustomerResponse is a customer with their bookings
type CustomerResponse struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	MobileNumber string            `json:"mobileNumber"`
	Area         string            `json:"area"`
	Bookings     []BookingResponse `json:"bookings"`
}

// FromDomainBooking converts a booking into its response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	slots := make([]string, len(b.Slots))
	for i, s := range b.Slots {
		slots[i] = s.String()
	}

	return &BookingResponse{
		ID:                  b.ID,
		TurfID:              b.TurfID,
		CourtID:             b.CourtID,
		CustomerID:          b.CustomerID,
		BookingDate:         b.BookingDate.Format(domain.DateFormat),
		Slots:               slots,
		SlotDurationMinutes: b.SlotDurationMinutes,
		TotalMinutes:        b.TotalMinutes(),
		Game:                b.Game,
		TeamSize:            b.TeamSize,
		Payment: PaymentResponse{
			Status:        string(b.PaymentStatus),
			Amount:        b.PaymentAmount,
			Method:        b.PaymentMethod,
			FailureReason: b.PaymentFailureReason,
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// FromDomainBookingList converts bookings into a list response
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	res := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, b := range bookings {
		res.Bookings = append(res.Bookings, *FromDomainBooking(b))
	}
	return res
}

// FromDomainTransitions converts the payment audit trail
func FromDomainTransitions(transitions []domain.PaymentTransition) []PaymentTransitionResponse {
	res := make([]PaymentTransitionResponse, 0, len(transitions))
	for _, t := range transitions {
		res = append(res, PaymentTransitionResponse{
			From:      string(t.From),
			To:        string(t.To),
			Amount:    t.Amount,
			Method:    t.Method,
			Reason:    t.Reason,
			CreatedAt: t.CreatedAt,
		})
	}
	return res
}
