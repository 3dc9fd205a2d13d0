package reserve_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	reserveSlots "github.com/m04kA/SMC-TurfBookingService/internal/usecase/reserve_slots"
	"github.com/m04kA/SMC-TurfBookingService/pkg/logger"
	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

type useCaseMock struct {
	mock.Mock
}

func (m *useCaseMock) Execute(ctx context.Context, req *reserveSlots.Request) (*reserveSlots.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*reserveSlots.Response)
	return resp, args.Error(1)
}

const validBody = `{"turfId":1,"courtId":1,"customerId":7,"bookingDate":"2025-03-14","slots":["10:00","11:00"],"game":"football","teamSize":10}`

func booking() *domain.Booking {
	return &domain.Booking{
		ID:                  42,
		TurfID:              1,
		CourtID:             1,
		CustomerID:          7,
		BookingDate:         time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Slots:               []types.TimeString{"10:00", "11:00"},
		SlotDurationMinutes: 60,
		Game:                "football",
		TeamSize:            10,
		PaymentStatus:       domain.PaymentStatusPending,
	}
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		key        string
		result     *reserveSlots.Response
		err        error
		callsUC    bool
		wantStatus int
		check      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:       "created",
			body:       validBody,
			result:     &reserveSlots.Response{Booking: booking()},
			callsUC:    true,
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "/api/v1/bookings/42", rec.Header().Get("Location"))
				assert.Empty(t, rec.Header().Get(HeaderReplayed))
			},
		},
		{
			name:       "replayed",
			body:       validBody,
			key:        "order-1",
			result:     &reserveSlots.Response{Booking: booking(), Replayed: true},
			callsUC:    true,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "true", rec.Header().Get(HeaderReplayed))
			},
		},
		{
			name:       "conflict lists taken slots",
			body:       validBody,
			err:        fmt.Errorf("reserve_slots: %w", &domain.SlotUnavailableError{Slots: []types.TimeString{"11:00"}}),
			callsUC:    true,
			wantStatus: http.StatusConflict,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body handlers.ConflictResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Equal(t, []string{"11:00"}, body.ConflictingSlots)
			},
		},
		{name: "unknown field", body: `{"turfId":1,"extra":true}`, wantStatus: http.StatusBadRequest},
		{name: "missing slots", body: `{"turfId":1,"courtId":1,"customerId":7,"bookingDate":"2025-03-14","game":"football","teamSize":10}`, wantStatus: http.StatusBadRequest},
		{name: "bad date", body: strings.Replace(validBody, "2025-03-14", "14/03/2025", 1), wantStatus: http.StatusBadRequest},
		{name: "off grid slot", body: validBody, err: reserveSlots.ErrInvalidSlots, callsUC: true, wantStatus: http.StatusBadRequest},
		{name: "turf not found", body: validBody, err: reserveSlots.ErrTurfNotFound, callsUC: true, wantStatus: http.StatusNotFound},
		{name: "customer not found", body: validBody, err: reserveSlots.ErrCustomerNotFound, callsUC: true, wantStatus: http.StatusNotFound},
		{name: "inactive turf", body: validBody, err: reserveSlots.ErrTurfInactive, callsUC: true, wantStatus: http.StatusUnprocessableEntity},
		{name: "storage down", body: validBody, err: reserveSlots.ErrStorageUnavailable, callsUC: true, wantStatus: http.StatusServiceUnavailable},
		{name: "unexpected", body: validBody, err: reserveSlots.ErrInternal, callsUC: true, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &useCaseMock{}
			if tt.callsUC {
				uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *reserveSlots.Request) bool {
					if tt.key == "" {
						return req.IdempotencyKey == nil
					}
					return req.IdempotencyKey != nil && *req.IdempotencyKey == tt.key
				})).Return(tt.result, tt.err).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(tt.body))
			if tt.key != "" {
				req.Header.Set(HeaderIdempotencyKey, tt.key)
			}
			rec := httptest.NewRecorder()

			NewHandler(uc, logger.NewNop()).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.check != nil {
				tt.check(t, rec)
			}
			uc.AssertExpectations(t)
		})
	}
}
