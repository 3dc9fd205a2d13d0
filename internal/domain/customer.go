package domain

import "time"

// Customer is looked up by bookings, it does not own them
type Customer struct {
	ID           int64
	Name         string
	MobileNumber string
	Area         string
	CreatedAt    time.Time
}
