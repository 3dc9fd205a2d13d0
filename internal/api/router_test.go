package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cancelReservationHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/cancel_reservation"
	getBookingHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/get_booking"
	getCustomerHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/get_customer"
	getFreeSlotsHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/get_free_slots"
	getTurfHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/get_turf"
	getTurfBookingsHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/get_turf_bookings"
	listTurfsHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/list_turfs"
	paymentStatusHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/payment_status"
	reserveSlotsHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/reserve_slots"
	updateTurfScheduleHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/update_turf_schedule"
	"github.com/m04kA/SMC-TurfBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/infra/cache"
	"github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/payments"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/turfs"
	cancelReservationUC "github.com/m04kA/SMC-TurfBookingService/internal/usecase/cancel_reservation"
	getFreeSlotsUC "github.com/m04kA/SMC-TurfBookingService/internal/usecase/get_free_slots"
	reserveSlotsUC "github.com/m04kA/SMC-TurfBookingService/internal/usecase/reserve_slots"
	"github.com/m04kA/SMC-TurfBookingService/pkg/logger"
	"github.com/m04kA/SMC-TurfBookingService/pkg/metrics"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.NewStore()
	store.PutTurf(&domain.Turf{
		ID:                  1,
		Name:                "Green Field",
		Area:                "Koramangala",
		OpenTime:            "09:00",
		CloseTime:           "18:00",
		SlotDurationMinutes: 60,
		Games:               []string{"football"},
		Status:              domain.TurfStatusActive,
		Courts: []domain.Court{
			{ID: 1, TurfID: 1, Name: "A", Position: 1},
			{ID: 2, TurfID: 1, Name: "B", Position: 2},
		},
	})
	store.PutCustomer(&domain.Customer{ID: 1, Name: "Ravi", MobileNumber: "9876543210"})
	store.PutCustomer(&domain.Customer{ID: 2, Name: "Asha", MobileNumber: "9123456780"})

	log := logger.NewNop()
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())

	turfSvc := turfs.NewService(store.Turfs(), cache.Nop{}, time.Minute, m, log)
	paymentSvc := payments.NewService(store.Payments(), store.Bookings(), nil, m, log)
	bookingSvc := bookings.NewService(store.Bookings(), store.Customers(), turfSvc, paymentSvc, log)

	reserve := reserveSlotsUC.NewUseCase(turfSvc, store.Customers(), store.Bookings(), paymentSvc, reserveSlotsUC.Config{
		Location:       time.UTC,
		MaxAdvanceDays: 30,
		MaxTeamSize:    22,
	}, m, log)

	router := NewRouter(Handlers{
		ListTurfs:          listTurfsHandler.NewHandler(turfSvc, log),
		GetTurf:            getTurfHandler.NewHandler(turfSvc, log),
		GetFreeSlots:       getFreeSlotsHandler.NewHandler(getFreeSlotsUC.NewUseCase(turfSvc, store.Bookings(), log), log),
		GetBooking:         getBookingHandler.NewHandler(bookingSvc, log),
		ReserveSlots:       reserveSlotsHandler.NewHandler(reserve, log),
		CancelReservation:  cancelReservationHandler.NewHandler(cancelReservationUC.NewUseCase(store.Bookings(), log), log),
		GetTurfBookings:    getTurfBookingsHandler.NewHandler(bookingSvc, log),
		GetCustomer:        getCustomerHandler.NewHandler(bookingSvc, log),
		UpdateTurfSchedule: updateTurfScheduleHandler.NewHandler(turfSvc, log),
		PaymentStatus:      paymentStatusHandler.NewHandler(paymentSvc, log),
	}, RouterOptions{Metrics: m, MetricsPath: "/metrics", Logger: log})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path string, body interface{}, headers map[string]string) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderUserID, "1")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func freeStarts(t *testing.T, srv *httptest.Server, courtID int64, date string) []string {
	t.Helper()

	resp := call(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/turfs/1/courts/%d/free-slots?date=%s", courtID, date), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body getFreeSlotsHandler.FreeSlotsResponse
	decode(t, resp, &body)

	starts := make([]string, len(body.FreeSlots))
	for i, s := range body.FreeSlots {
		starts[i] = s.Start
	}
	return starts
}

func TestRouter_ReservationFlow(t *testing.T) {
	srv := newTestServer(t)
	date := time.Now().UTC().AddDate(0, 0, 1).Format(domain.DateFormat)

	// empty day: 09:00 ... 17:00
	assert.Len(t, freeStarts(t, srv, 1, date), 9)

	reserve := map[string]interface{}{
		"turfId":      1,
		"courtId":     1,
		"customerId":  1,
		"bookingDate": date,
		"slots":       []string{"11:00", "10:00"},
		"game":        "football",
		"teamSize":    10,
	}
	key := map[string]string{reserveSlotsHandler.HeaderIdempotencyKey: "order-1"}

	resp := call(t, srv, http.MethodPost, "/api/v1/bookings", reserve, key)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.BookingResponse
	decode(t, resp, &created)
	assert.Equal(t, []string{"10:00", "11:00"}, created.Slots)
	assert.Equal(t, "pending", created.Payment.Status)
	assert.Equal(t, fmt.Sprintf("/api/v1/bookings/%d", created.ID), resp.Header.Get("Location"))
	assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))

	assert.Equal(t,
		[]string{"09:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"},
		freeStarts(t, srv, 1, date))
	assert.Len(t, freeStarts(t, srv, 2, date), 9, "other court is untouched")

	// retry with the same key
	resp = call(t, srv, http.MethodPost, "/api/v1/bookings", reserve, key)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get(reserveSlotsHandler.HeaderReplayed))
	var replayed models.BookingResponse
	decode(t, resp, &replayed)
	assert.Equal(t, created.ID, replayed.ID)

	// overlapping request from someone else
	reserve["customerId"] = 2
	reserve["slots"] = []string{"11:00", "12:00"}
	resp = call(t, srv, http.MethodPost, "/api/v1/bookings", reserve, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var conflict struct {
		ConflictingSlots []string `json:"conflictingSlots"`
	}
	decode(t, resp, &conflict)
	assert.Equal(t, []string{"11:00"}, conflict.ConflictingSlots)

	// payment
	resp = call(t, srv, http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/payment/paid", created.ID),
		map[string]interface{}{"amount": 1200, "method": "upi"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var paid models.BookingResponse
	decode(t, resp, &paid)
	assert.Equal(t, "paid", paid.Payment.Status)

	resp = call(t, srv, http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/payment/failed", created.ID),
		map[string]interface{}{"reason": "late"}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = call(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/bookings/%d", created.ID), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.BookingResponse
	decode(t, resp, &fetched)
	assert.Equal(t, "Ravi", fetched.CustomerName)
	assert.Len(t, fetched.PaymentHistory, 2)

	// cancel releases the slots
	resp = call(t, srv, http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%d/cancel", created.ID), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cancelled cancelReservationHandler.CancelResponse
	decode(t, resp, &cancelled)
	assert.Equal(t, []string{"10:00", "11:00"}, cancelled.ReleasedSlots)

	assert.Len(t, freeStarts(t, srv, 1, date), 9)

	resp = call(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/bookings/%d", created.ID), nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_ProtectedRoutesNeedUser(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/customers/1", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err = http.NewRequest(http.MethodGet, srv.URL+"/api/v1/turfs", nil)
	require.NoError(t, err)
	resp, err = srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_ScheduleChangeShowsInFreeSlots(t *testing.T) {
	srv := newTestServer(t)
	date := time.Now().UTC().AddDate(0, 0, 2).Format(domain.DateFormat)

	resp := call(t, srv, http.MethodPut, "/api/v1/turfs/1/schedule", map[string]interface{}{
		"openTime":            "06:00",
		"closeTime":           "09:00",
		"slotDurationMinutes": 90,
		"status":              "active",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, []string{"06:00", "07:30"}, freeStarts(t, srv, 1, date))

	resp = call(t, srv, http.MethodPut, "/api/v1/turfs/1/schedule", map[string]interface{}{
		"openTime":            "06:00",
		"closeTime":           "09:00",
		"slotDurationMinutes": 90,
		"status":              "inactive",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, srv, http.MethodGet, "/api/v1/turfs/1/courts/1/free-slots?date="+date, nil, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
