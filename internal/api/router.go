package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

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
	"github.com/m04kA/SMC-TurfBookingService/pkg/metrics"
)

// Handlers groups every HTTP handler served by the API
type Handlers struct {
	ListTurfs          *listTurfsHandler.Handler
	GetTurf            *getTurfHandler.Handler
	GetFreeSlots       *getFreeSlotsHandler.Handler
	GetBooking         *getBookingHandler.Handler
	ReserveSlots       *reserveSlotsHandler.Handler
	CancelReservation  *cancelReservationHandler.Handler
	GetTurfBookings    *getTurfBookingsHandler.Handler
	GetCustomer        *getCustomerHandler.Handler
	UpdateTurfSchedule *updateTurfScheduleHandler.Handler
	PaymentStatus      *paymentStatusHandler.Handler
}

// RouterOptions controls the cross-cutting parts of the router
type RouterOptions struct {
	// Metrics is nil when metrics are disabled
	Metrics     *metrics.Metrics
	MetricsPath string
	Logger      middleware.Logger
}

// NewRouter builds the /api/v1 routes
func NewRouter(h Handlers, opts RouterOptions) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.RequestID)
	if opts.Logger != nil {
		r.Use(middleware.AccessLog(opts.Logger))
	}
	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
		if opts.MetricsPath != "" {
			r.Handle(opts.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
		}
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/turfs", h.ListTurfs.Handle).Methods(http.MethodGet)
	api.HandleFunc("/turfs/{turfId}", h.GetTurf.Handle).Methods(http.MethodGet)
	api.HandleFunc("/turfs/{turfId}/courts/{courtId}/free-slots", h.GetFreeSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Reservations ---
	protected.HandleFunc("/bookings", h.ReserveSlots.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", h.GetBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", h.CancelReservation.Handle).Methods(http.MethodPatch)

	// --- Payments ---
	protected.HandleFunc("/bookings/{bookingId}/payment/{action}", h.PaymentStatus.Handle).Methods(http.MethodPost)

	// --- Turf management ---
	protected.HandleFunc("/turfs/{turfId}/bookings", h.GetTurfBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/turfs/{turfId}/schedule", h.UpdateTurfSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/customers/{customerId}", h.GetCustomer.Handle).Methods(http.MethodGet)

	return r
}
