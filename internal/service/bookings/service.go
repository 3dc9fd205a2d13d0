package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/bookings/models"
)

// Service answers booking queries for the dashboard
type Service struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	turfs        TurfCatalog
	payments     PaymentHistory
	logger       Logger
}

// NewService creates the booking query service
func NewService(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	turfs TurfCatalog,
	payments PaymentHistory,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		turfs:        turfs,
		payments:     payments,
		logger:       logger,
	}
}

// GetByID returns a booking with its customer name and payment history
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
		}
		return nil, s.wrapRepoError("GetByID", err)
	}

	resp := models.FromDomainBooking(booking)
	resp.CustomerName = s.customerNames(ctx, []*domain.Booking{booking})[booking.CustomerID]

	history, err := s.payments.History(ctx, id)
	if err != nil {
		// the booking itself is still worth returning
		s.logger.Warn("GetByID: payment history unavailable for booking id=%d: %v", id, err)
	} else {
		resp.PaymentHistory = models.FromDomainTransitions(history)
	}

	return resp, nil
}

// ListTurfBookings returns the bookings of a turf, optionally on one court and day
func (s *Service) ListTurfBookings(ctx context.Context, req *models.TurfBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("ListTurfBookings: fetching bookings for turf=%d", req.TurfID)
	if req.CourtID != nil {
		logMsg += fmt.Sprintf(", court=%d", *req.CourtID)
	}
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	s.logger.Info(logMsg)

	if _, err := s.turfs.GetTurf(ctx, req.TurfID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("ListTurfBookings: turf=%d not found", req.TurfID)
			return nil, fmt.Errorf("%w: id=%d", ErrTurfNotFound, req.TurfID)
		}
		return nil, s.wrapRepoError("ListTurfBookings", err)
	}

	bookings, err := s.bookingRepo.ListByTurf(ctx, req.ToDomainFilter())
	if err != nil {
		return nil, s.wrapRepoError("ListTurfBookings", err)
	}

	resp := models.FromDomainBookingList(bookings)
	names := s.customerNames(ctx, bookings)
	for i := range resp.Bookings {
		resp.Bookings[i].CustomerName = names[resp.Bookings[i].CustomerID]
	}

	s.logger.Info("ListTurfBookings: fetched %d bookings for turf=%d", len(bookings), req.TurfID)
	return resp, nil
}

// GetCustomer returns a customer and their bookings, optionally only on one turf
func (s *Service) GetCustomer(ctx context.Context, req *models.CustomerRequest) (*models.CustomerResponse, error) {
	s.logger.Info("GetCustomer: fetching customer=%d turf=%v", req.CustomerID, req.TurfID)

	customer, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("GetCustomer: customer=%d not found", req.CustomerID)
			return nil, fmt.Errorf("%w: id=%d", ErrCustomerNotFound, req.CustomerID)
		}
		return nil, s.wrapRepoError("GetCustomer", err)
	}

	bookings, err := s.bookingRepo.ListByCustomer(ctx, domain.CustomerBookingsFilter{
		CustomerID: req.CustomerID,
		TurfID:     req.TurfID,
	})
	if err != nil {
		return nil, s.wrapRepoError("GetCustomer", err)
	}

	list := models.FromDomainBookingList(bookings)
	for i := range list.Bookings {
		list.Bookings[i].CustomerName = customer.Name
	}

	return &models.CustomerResponse{
		ID:           customer.ID,
		Name:         customer.Name,
		MobileNumber: customer.MobileNumber,
		Area:         customer.Area,
		Bookings:     list.Bookings,
	}, nil
}

// customerNames resolves the names of the customers of bookings. Unknown customers are skipped.
func (s *Service) customerNames(ctx context.Context, bookings []*domain.Booking) map[int64]string {
	names := make(map[int64]string)
	for _, b := range bookings {
		if _, ok := names[b.CustomerID]; ok {
			continue
		}
		customer, err := s.customerRepo.GetByID(ctx, b.CustomerID)
		if err != nil {
			s.logger.Warn("customerNames: customer=%d: %v", b.CustomerID, err)
			names[b.CustomerID] = ""
			continue
		}
		names[b.CustomerID] = customer.Name
	}
	return names
}

func (s *Service) wrapRepoError(op string, err error) error {
	if errors.Is(err, domain.ErrStorageUnavailable) {
		s.logger.Error("%s: storage unavailable: %v", op, err)
		return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
