package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sweater-ventures/notifier/config"
	"github.com/sweater-ventures/notifier/metrics"
	"github.com/wb-go/wbf/retry"
)

// Broker consumes inbound events from RabbitMQ and feeds them to the
// ingestor. Acknowledgement policy: ack after every touched bucket is
// committed, drop malformed messages permanently, requeue on store errors.
type Broker struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	queue   string
}

// NewBroker dials RabbitMQ with retries and declares the inbound queue.
func NewBroker(ctx context.Context, cfg *config.AppConfig) (*Broker, error) {
	strategy := retry.Strategy{
		Attempts: cfg.AmqpDialAttempts,
		Delay:    time.Duration(cfg.AmqpDialDelayMs) * time.Millisecond,
		Backoff:  cfg.AmqpDialBackoff,
	}

	var conn *amqp091.Connection
	err := retry.DoContext(ctx, strategy, func() error {
		var dialErr error
		conn, dialErr = amqp091.Dial(cfg.AmqpURL)
		return dialErr
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		cfg.AmqpQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declaring queue %q: %w", cfg.AmqpQueue, err)
	}

	if err := ch.Qos(cfg.AmqpPrefetch, 0, false); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting prefetch: %w", err)
	}

	return &Broker{conn: conn, channel: ch, queue: cfg.AmqpQueue}, nil
}

// Consume reads events from the queue until the context is cancelled or the
// channel closes.
func (b *Broker) Consume(ctx context.Context, app *Application) error {
	deliveries, err := b.channel.Consume(
		b.queue,
		"",    // consumer tag
		false, // autoAck — we ack manually after commit
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("starting consumer on %q: %w", b.queue, err)
	}

	logger := log(ctx).With("queue", b.queue)
	logger.Info("Consuming events")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Event consumer stopped")
			return nil
		case msg, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			b.handleDelivery(ctx, app, msg)
		}
	}
}

func (b *Broker) handleDelivery(ctx context.Context, app *Application, msg amqp091.Delivery) {
	logger := log(ctx).With("queue", b.queue)
	metrics.EventsReceivedTotal.Inc()

	event, err := DecodeEvent(msg.Body)
	if err == nil {
		err = app.SubmitEvent(ctx, event)
	}

	switch {
	case err == nil:
		if ackErr := msg.Ack(false); ackErr != nil {
			logger.Error("Failed to ack event", "event_uuid", event.UUID, "error", ackErr)
		}
	case errors.Is(err, ErrMalformedEvent):
		// Poison message: redelivery can never succeed, drop it.
		logger.Error("Dropping malformed event", "error", err)
		metrics.EventsMalformedTotal.Inc()
		if nackErr := msg.Nack(false, false); nackErr != nil {
			logger.Error("Failed to nack malformed event", "error", nackErr)
		}
	default:
		// Transient store failure: requeue. The per-bucket last-event marker
		// makes the redelivery safe.
		logger.Error("Failed to process event, requeueing", "event_uuid", event.UUID, "error", err)
		if nackErr := msg.Nack(false, true); nackErr != nil {
			logger.Error("Failed to nack event", "error", nackErr)
		}
	}
}

// Close tears down the channel and connection.
func (b *Broker) Close() {
	if b.channel != nil {
		b.channel.Close()
	}
	if b.conn != nil {
		b.conn.Close()
	}
}
