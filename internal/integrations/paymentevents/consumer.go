package paymentevents

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/payments"
)

const defaultPrefetch = 8

// Result is what happens to a delivery after handling
type Result string

const (
	ResultApplied   Result = "applied"
	ResultDuplicate Result = "duplicate"
	ResultRejected  Result = "rejected" // dropped, redelivery would fail the same way
	ResultRequeued  Result = "requeued" // transient failure
)

// PaymentApplier applies an external payment result to a booking
type PaymentApplier interface {
	Apply(ctx context.Context, bookingID int64, u payments.Update) (*domain.Booking, bool, error)
}

// Metrics records consumed events
type Metrics interface {
	RecordPaymentEvent(routingKey, result string)
}

// Logger is the logging surface used by the consumer
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config describes the broker topology
type Config struct {
	URL      string
	Exchange string
	Queue    string
	Bindings []string
	Prefetch int
	Tag      string
}

// Consumer applies payment events from RabbitMQ to bookings
type Consumer struct {
	cfg     Config
	applier PaymentApplier
	metrics Metrics
	logger  Logger

	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewConsumer creates a consumer. Call Connect before Run.
func NewConsumer(cfg Config, applier PaymentApplier, metrics Metrics, logger Logger) *Consumer {
	if len(cfg.Bindings) == 0 {
		cfg.Bindings = DefaultBindings
	}
	if cfg.Prefetch <= 0 {
		cfg.Prefetch = defaultPrefetch
	}
	return &Consumer{cfg: cfg, applier: applier, metrics: metrics, logger: logger}
}

// Connect dials the broker and declares the exchange, the queue and its bindings
func (c *Consumer) Connect() error {
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	fail := func(step string, err error) error {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("%w: %s: %v", ErrConnect, step, err)
	}

	if err := ch.ExchangeDeclare(c.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fail("declare exchange", err)
	}
	q, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, nil)
	if err != nil {
		return fail("declare queue", err)
	}
	for _, key := range c.cfg.Bindings {
		if err := ch.QueueBind(q.Name, key, c.cfg.Exchange, false, nil); err != nil {
			return fail("bind "+key, err)
		}
	}
	if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		return fail("set qos", err)
	}

	c.conn = conn
	c.ch = ch
	c.cfg.Queue = q.Name
	return nil
}

// Close releases the channel and the connection
func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Run consumes until ctx is done or the broker closes the channel
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.cfg.Queue, c.cfg.Tag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("paymentevents: consume: %w", err)
	}

	c.logger.Info("paymentevents: consuming queue=%s bindings=%v", c.cfg.Queue, c.cfg.Bindings)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("paymentevents: delivery channel closed")
			}

			switch c.HandleDelivery(ctx, d.RoutingKey, d.Body) {
			case ResultRequeued:
				_ = d.Nack(false, true)
			case ResultRejected:
				_ = d.Nack(false, false)
			default:
				_ = d.Ack(false)
			}
		}
	}
}

// HandleDelivery applies one event and reports what to do with the delivery
func (c *Consumer) HandleDelivery(ctx context.Context, routingKey string, body []byte) Result {
	result := c.handle(ctx, routingKey, body)
	c.metrics.RecordPaymentEvent(routingKey, string(result))
	return result
}

func (c *Consumer) handle(ctx context.Context, routingKey string, body []byte) Result {
	status, ok := targetStatus(routingKey)
	if !ok {
		c.logger.Warn("paymentevents: skip key=%s: %v", routingKey, ErrUnknownRoutingKey)
		return ResultRejected
	}

	ev, err := decodeEvent(body)
	if err != nil {
		c.logger.Warn("paymentevents: key=%s: %v", routingKey, err)
		return ResultRejected
	}

	_, changed, err := c.applier.Apply(ctx, ev.BookingID, payments.Update{
		Status: status,
		Amount: ev.Amount,
		Method: ev.Method,
		Reason: ev.Reason,
	})
	switch {
	case err == nil && !changed:
		c.logger.Info("paymentevents: booking=%d already %s", ev.BookingID, status)
		return ResultDuplicate
	case err == nil:
		c.logger.Info("paymentevents: booking=%d is %s", ev.BookingID, status)
		return ResultApplied
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidStatusTransition),
		errors.Is(err, payments.ErrInvalidInput):
		c.logger.Warn("paymentevents: drop key=%s booking=%d: %v", routingKey, ev.BookingID, err)
		return ResultRejected
	default:
		c.logger.Error("paymentevents: key=%s booking=%d: %v -> requeue", routingKey, ev.BookingID, err)
		return ResultRequeued
	}
}
