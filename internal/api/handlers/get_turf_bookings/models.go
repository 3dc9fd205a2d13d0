package get_turf_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-TurfBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/bookings/models"
)

// ToServiceRequest builds the service request from the query parameters courtId and date
func ToServiceRequest(turfID int64, r *http.Request) (*models.TurfBookingsRequest, error) {
	courtID, err := handlers.QueryID(r, "courtId")
	if err != nil {
		return nil, err
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		return nil, err
	}

	return &models.TurfBookingsRequest{
		TurfID:  turfID,
		CourtID: courtID,
		Date:    date,
	}, nil
}
