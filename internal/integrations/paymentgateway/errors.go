package paymentgateway

import "errors"

var (
	// ErrPaymentNotFound is returned when the gateway has no payment for the booking
	ErrPaymentNotFound = errors.New("paymentgateway client: payment not found")

	// ErrUnavailable is returned when the gateway cannot be reached
	ErrUnavailable = errors.New("paymentgateway client: gateway unavailable")

	// ErrInternal is returned on client side failures
	ErrInternal = errors.New("paymentgateway client: internal error")

	// ErrInvalidResponse is returned when the gateway answers with something unexpected
	ErrInvalidResponse = errors.New("paymentgateway client: invalid response")
)
