package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

func TestTurf_OrderedCourts(t *testing.T) {
	turf := &Turf{Courts: []Court{
		{ID: 3, Position: 2},
		{ID: 2, Position: 1},
		{ID: 1, Position: 1},
	}}

	ordered := turf.OrderedCourts()
	assert.Equal(t, []int64{1, 2, 3}, []int64{ordered[0].ID, ordered[1].ID, ordered[2].ID})
	// original order untouched
	assert.Equal(t, int64(3), turf.Courts[0].ID)
}

func TestTurf_OffersGame(t *testing.T) {
	turf := &Turf{Games: []string{"football", "cricket"}}
	assert.True(t, turf.OffersGame("cricket"))
	assert.False(t, turf.OffersGame("tennis"))

	open := &Turf{}
	assert.True(t, open.OffersGame("anything"))
}

func TestBooking_Clone(t *testing.T) {
	method := "upi"
	b := &Booking{Slots: []types.TimeString{"10:00"}, PaymentMethod: &method}

	c := b.Clone()
	c.Slots[0] = "11:00"
	*c.PaymentMethod = "cash"

	assert.Equal(t, types.TimeString("10:00"), b.Slots[0])
	assert.Equal(t, "upi", *b.PaymentMethod)
}
