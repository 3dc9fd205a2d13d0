package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/integrations/paymentgateway"
)

const maxMethodLength = 64

// Update is an externally reported payment result
type Update struct {
	Status domain.PaymentStatus
	Amount float64
	Method string
	Reason string
}

// Service tracks the payment status of bookings.
// Every operation is a compare-and-set from its fixed source status, so two
// concurrent transitions of the same booking cannot both succeed.
type Service struct {
	repo     PaymentRepository
	bookings BookingReader
	gateway  GatewayClient
	metrics  Metrics
	logger   Logger
}

// NewService creates the payment status tracker. gateway may be nil when reconciliation is disabled.
func NewService(repo PaymentRepository, bookings BookingReader, gateway GatewayClient, metrics Metrics, logger Logger) *Service {
	return &Service{
		repo:     repo,
		bookings: bookings,
		gateway:  gateway,
		metrics:  metrics,
		logger:   logger,
	}
}

// InitPending moves a freshly committed booking from none to pending
func (s *Service) InitPending(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.transition(ctx, "InitPending", &domain.PaymentTransition{
		BookingID: bookingID,
		From:      domain.PaymentStatusNone,
		To:        domain.PaymentStatusPending,
	})
}

// MarkPaid moves a pending booking to paid
func (s *Service) MarkPaid(ctx context.Context, bookingID int64, amount float64, method string) (*domain.Booking, error) {
	method = strings.TrimSpace(method)
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if method == "" || len(method) > maxMethodLength {
		return nil, fmt.Errorf("%w: method is required and must be at most %d characters", ErrInvalidInput, maxMethodLength)
	}

	return s.transition(ctx, "MarkPaid", &domain.PaymentTransition{
		BookingID: bookingID,
		From:      domain.PaymentStatusPending,
		To:        domain.PaymentStatusPaid,
		Amount:    &amount,
		Method:    &method,
	})
}

// MarkFailed moves a pending booking to failed. The slots stay booked.
func (s *Service) MarkFailed(ctx context.Context, bookingID int64, reason string) (*domain.Booking, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" || len(reason) > domain.MaxFailureReasonLength {
		return nil, fmt.Errorf("%w: reason is required and must be at most %d characters", ErrInvalidInput, domain.MaxFailureReasonLength)
	}

	return s.transition(ctx, "MarkFailed", &domain.PaymentTransition{
		BookingID: bookingID,
		From:      domain.PaymentStatusPending,
		To:        domain.PaymentStatusFailed,
		Reason:    &reason,
	})
}

// Refund moves a paid booking to refunded
func (s *Service) Refund(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.transition(ctx, "Refund", &domain.PaymentTransition{
		BookingID: bookingID,
		From:      domain.PaymentStatusPaid,
		To:        domain.PaymentStatusRefunded,
	})
}

// Apply moves the booking to u.Status with the matching operation.
// The bool is false when the booking already had that status and nothing changed.
func (s *Service) Apply(ctx context.Context, bookingID int64, u Update) (*domain.Booking, bool, error) {
	current, err := s.getBooking(ctx, "Apply", bookingID)
	if err != nil {
		return nil, false, err
	}
	if current.PaymentStatus == u.Status {
		s.logger.Info("Apply: booking=%d already %s", bookingID, u.Status)
		return current, false, nil
	}
	if current.PaymentStatus == domain.PaymentStatusNone && u.Status != domain.PaymentStatusPending {
		s.logger.Warn("Apply: booking=%d has no open payment yet, %s deferred", bookingID, u.Status)
		return nil, false, fmt.Errorf("%w: booking=%d", ErrPaymentNotOpened, bookingID)
	}

	var updated *domain.Booking
	switch u.Status {
	case domain.PaymentStatusPaid:
		updated, err = s.MarkPaid(ctx, bookingID, u.Amount, u.Method)
	case domain.PaymentStatusFailed:
		updated, err = s.MarkFailed(ctx, bookingID, u.Reason)
	case domain.PaymentStatusRefunded:
		updated, err = s.Refund(ctx, bookingID)
	case domain.PaymentStatusPending:
		updated, err = s.InitPending(ctx, bookingID)
	default:
		return nil, false, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, u.Status)
	}
	if err != nil {
		return nil, false, err
	}

	return updated, true, nil
}

// Reconcile pulls the payment result from the gateway and applies it
func (s *Service) Reconcile(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	s.logger.Info("Reconcile: booking=%d", bookingID)

	if s.gateway == nil {
		return nil, fmt.Errorf("%w: gateway is not configured", ErrGatewayUnavailable)
	}

	payment, err := s.gateway.GetPaymentStatus(ctx, bookingID)
	if err != nil {
		if errors.Is(err, paymentgateway.ErrPaymentNotFound) {
			s.logger.Warn("Reconcile: gateway has no payment for booking=%d", bookingID)
			return s.getBooking(ctx, "Reconcile", bookingID)
		}
		s.logger.Error("Reconcile: gateway error for booking=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	booking, _, err := s.Apply(ctx, bookingID, Update{
		Status: domain.PaymentStatus(payment.Status),
		Amount: payment.Amount,
		Method: payment.Method,
		Reason: payment.FailureReason,
	})
	return booking, err
}

// History returns the payment audit trail of a booking
func (s *Service) History(ctx context.Context, bookingID int64) ([]domain.PaymentTransition, error) {
	transitions, err := s.repo.ListTransitions(ctx, bookingID)
	if err != nil {
		return nil, s.wrapRepoError("History", bookingID, err)
	}
	return transitions, nil
}

func (s *Service) transition(ctx context.Context, op string, t *domain.PaymentTransition) (*domain.Booking, error) {
	s.logger.Info("%s: booking=%d %s -> %s", op, t.BookingID, t.From, t.To)

	if !domain.CanTransition(t.From, t.To) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.From, t.To)
	}

	if err := s.repo.Transition(ctx, t); err != nil {
		return nil, s.wrapRepoError(op, t.BookingID, err)
	}

	s.metrics.RecordPaymentTransition(string(t.From), string(t.To))
	s.logger.Info("%s: booking=%d is %s", op, t.BookingID, t.To)

	return s.getBooking(ctx, op, t.BookingID)
}

func (s *Service) getBooking(ctx context.Context, op string, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, s.wrapRepoError(op, bookingID, err)
	}
	return booking, nil
}

func (s *Service) wrapRepoError(op string, bookingID int64, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.logger.Warn("%s: booking=%d not found", op, bookingID)
		return fmt.Errorf("%w: id=%d", ErrBookingNotFound, bookingID)
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		s.logger.Warn("%s: rejected transition: %v", op, err)
		return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	case errors.Is(err, domain.ErrStorageUnavailable):
		s.logger.Error("%s: storage unavailable for booking=%d: %v", op, bookingID, err)
		return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
	default:
		s.logger.Error("%s: repository error for booking=%d: %v", op, bookingID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
