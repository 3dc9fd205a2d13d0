package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minutesPerDay = 24 * 60
	timeLayout    = "15:04"
)

var (
	// ErrInvalidTimeString is returned when a value is not a valid HH:MM wall clock time
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow is returned when arithmetic leaves the 00:00-24:00 range
	ErrTimeOverflow = errors.New("time string out of day range")
)

// TimeString is a wall clock time of day in HH:MM format.
// "24:00" is accepted as the end of day so that a venue can close at midnight.
type TimeString string

// NewTimeStringFromString parses and normalizes an HH:MM (or HH:MM:SS from postgres TIME) value
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := parseMinutes(s)
	if err != nil {
		return "", err
	}
	return fromMinutes(minutes), nil
}

// NewTimeString takes the wall clock part of t
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// MustTimeString is NewTimeStringFromString for literals known to be valid
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// Validate checks the HH:MM format
func (t TimeString) Validate() error {
	_, err := parseMinutes(string(t))
	return err
}

// IsZero reports whether the value is empty
func (t TimeString) IsZero() bool {
	return t == ""
}

// String returns the HH:MM representation
func (t TimeString) String() string {
	return string(t)
}

// Minutes returns minutes since midnight. Invalid values yield -1.
func (t TimeString) Minutes() int {
	m, err := parseMinutes(string(t))
	if err != nil {
		return -1
	}
	return m
}

// AddMinutes shifts the time by n minutes within a single day
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	m, err := parseMinutes(string(t))
	if err != nil {
		return "", err
	}
	res := m + n
	if res < 0 || res > minutesPerDay {
		return "", fmt.Errorf("%w: %s %+d min", ErrTimeOverflow, t, n)
	}
	return fromMinutes(res), nil
}

// IsBefore reports whether t is strictly earlier than other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter reports whether t is strictly later than other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// Equal compares two values ignoring formatting differences
func (t TimeString) Equal(other TimeString) bool {
	return t.Minutes() == other.Minutes()
}

// OnDate combines the wall clock time with the calendar date in loc
func (t TimeString) OnDate(date time.Time, loc *time.Location) time.Time {
	y, mo, d := date.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, loc).Add(time.Duration(t.Minutes()) * time.Minute)
}

// Value implements driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan implements sql.Scanner for TIME and TEXT columns
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func parseMinutes(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	sec := 0
	if len(parts) == 3 {
		sec, err = strconv.Atoi(parts[2])
		if err != nil || sec != 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
	}

	if h < 0 || h > 24 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if h == 24 && m != 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	return h*60 + m, nil
}

func fromMinutes(m int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60))
}
