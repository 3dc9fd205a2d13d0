package update_turf_schedule

import (
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/slotgrid"
	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	OpenTime            string `json:"openTime" validate:"required"`  // "09:00"
	CloseTime           string `json:"closeTime" validate:"required"` // "18:00", "24:00" closes at midnight
	SlotDurationMinutes int    `json:"slotDurationMinutes" validate:"required,gt=0"`
	Status              string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ScheduleResponse HTTP response model
type ScheduleResponse struct {
	TurfID              int64  `json:"turfId"`
	OpenTime            string `json:"openTime"`
	CloseTime           string `json:"closeTime"`
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
	SlotsPerCourt       int    `json:"slotsPerCourt"`
	Status              string `json:"status"`
	UpdatedAt           string `json:"updatedAt"`
}

// ToDomain parses the wall clock times
func (r *UpdateScheduleRequest) ToDomain() (domain.TurfSchedule, error) {
	open, err := types.NewTimeStringFromString(r.OpenTime)
	if err != nil {
		return domain.TurfSchedule{}, err
	}
	closeTime, err := types.NewTimeStringFromString(r.CloseTime)
	if err != nil {
		return domain.TurfSchedule{}, err
	}

	return domain.TurfSchedule{
		OpenTime:            open,
		CloseTime:           closeTime,
		SlotDurationMinutes: r.SlotDurationMinutes,
		Status:              domain.TurfStatus(r.Status),
	}, nil
}

// FromDomain converts the updated turf into the HTTP response
func FromDomain(turf *domain.Turf) *ScheduleResponse {
	return &ScheduleResponse{
		TurfID:              turf.ID,
		OpenTime:            turf.OpenTime.String(),
		CloseTime:           turf.CloseTime.String(),
		SlotDurationMinutes: turf.SlotDurationMinutes,
		SlotsPerCourt:       slotgrid.Count(turf),
		Status:              string(turf.Status),
		UpdatedAt:           turf.UpdatedAt.Format(time.RFC3339),
	}
}
