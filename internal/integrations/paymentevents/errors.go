package paymentevents

import "errors"

var (
	// ErrMalformedEvent is returned for a payload that cannot be decoded
	ErrMalformedEvent = errors.New("paymentevents: malformed event")

	// ErrUnknownRoutingKey is returned for a routing key without a payment status
	ErrUnknownRoutingKey = errors.New("paymentevents: unknown routing key")

	// ErrConnect is returned when the broker topology cannot be set up
	ErrConnect = errors.New("paymentevents: connect failed")
)
