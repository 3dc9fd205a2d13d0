package domain

// Business validation constants
const (
	MinSlotDurationMinutes  = 15
	MaxSlotDurationMinutes  = 240 // 4 hours
	MinTeamSize             = 1
	MaxGameNameLength       = 50
	MaxFailureReasonLength  = 500
	MaxIdempotencyKeyLength = 128
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Reservation outcomes reported to metrics
const (
	OutcomeReserved = "reserved"
	OutcomeReplayed = "replayed"
	OutcomeConflict = "conflict"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
)
