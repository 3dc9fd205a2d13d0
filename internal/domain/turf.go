package domain

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

// TurfStatus represents whether a turf accepts bookings
type TurfStatus string

const (
	TurfStatusActive   TurfStatus = "active"
	TurfStatusInactive TurfStatus = "inactive"
)

// IsValid returns true for known statuses
func (s TurfStatus) IsValid() bool {
	return s == TurfStatusActive || s == TurfStatusInactive
}

// Court is a bookable playing area. Belongs to exactly one turf.
type Court struct {
	ID       int64  `json:"id"`
	TurfID   int64  `json:"turfId"`
	Name     string `json:"name"`
	Position int    `json:"position"` // order inside the turf
}

// Turf is a sports venue with a daily operating window split into fixed slots
type Turf struct {
	ID                  int64            `json:"id"`
	Name                string           `json:"name"`
	Address             string           `json:"address"`
	Area                string           `json:"area"`
	OpenTime            types.TimeString `json:"openTime"`
	CloseTime           types.TimeString `json:"closeTime"`
	SlotDurationMinutes int              `json:"slotDurationMinutes"`
	Games               []string         `json:"games"`
	Status              TurfStatus       `json:"status"`
	Courts              []Court          `json:"courts"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// IsActive returns true if the turf accepts bookings
func (t *Turf) IsActive() bool {
	return t.Status == TurfStatusActive
}

// FindCourt returns the court with the given id if it belongs to the turf
func (t *Turf) FindCourt(courtID int64) (*Court, bool) {
	for i := range t.Courts {
		if t.Courts[i].ID == courtID {
			return &t.Courts[i], true
		}
	}
	return nil, false
}

// OffersGame returns true if game is played on this turf.
// A turf without a games list accepts any game.
func (t *Turf) OffersGame(game string) bool {
	if len(t.Games) == 0 {
		return true
	}
	for _, g := range t.Games {
		if g == game {
			return true
		}
	}
	return false
}

// WindowMinutes returns the length of the operating window
func (t *Turf) WindowMinutes() int {
	return t.CloseTime.Minutes() - t.OpenTime.Minutes()
}

// OrderedCourts returns a copy of the courts sorted by position, then id
func (t *Turf) OrderedCourts() []Court {
	courts := make([]Court, len(t.Courts))
	copy(courts, t.Courts)
	sort.SliceStable(courts, func(i, j int) bool {
		if courts[i].Position != courts[j].Position {
			return courts[i].Position < courts[j].Position
		}
		return courts[i].ID < courts[j].ID
	})
	return courts
}

// TurfSchedule is the editable part of a turf
type TurfSchedule struct {
	OpenTime            types.TimeString
	CloseTime           types.TimeString
	SlotDurationMinutes int
	Status              TurfStatus
}

// Clone returns a deep copy of the turf
func (t *Turf) Clone() *Turf {
	c := *t
	c.Games = append([]string(nil), t.Games...)
	c.Courts = append([]Court{}, t.Courts...)
	return &c
}
