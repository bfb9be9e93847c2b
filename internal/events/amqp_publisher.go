package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

const (
	amqpDialAttempts = 5
	amqpDialBackoff  = 200 * time.Millisecond
	amqpOutboxSize   = 256
)

var (
	// ErrPublisherClosed is returned when publishing after Close.
	ErrPublisherClosed = errors.New("amqp publisher closed")
	// ErrOutboxFull is returned when events arrive faster than the broker accepts them.
	ErrOutboxFull = errors.New("amqp outbox full")
)

// AMQPPublisher forwards events to a durable RabbitMQ queue. Handle only enqueues;
// a goroutine owned by the publisher dials lazily and delivers, so an unreachable
// broker never delays the request that emitted the event.
type AMQPPublisher struct {
	url    string
	queue  string
	logger *zap.Logger

	outbox chan amqp.Publishing
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// conn and ch are owned by the run goroutine until Close has waited for it.
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAMQPPublisher builds a publisher for queue at url and starts its delivery loop.
func NewAMQPPublisher(url, queue string, logger *zap.Logger) *AMQPPublisher {
	ctx, cancel := context.WithCancel(context.Background())
	p := &AMQPPublisher{
		url:    url,
		queue:  queue,
		logger: logger.Named("amqp"),
		outbox: make(chan amqp.Publishing, amqpOutboxSize),
		ctx:    ctx,
		cancel: cancel,
	}
	p.wg.Add(1)
	go p.run()
	return p
}

// Register subscribes the publisher to booking lifecycle events.
func (p *AMQPPublisher) Register(d Dispatcher) {
	SubscribeAll(d, []EventType{EventBookingCreated, EventBookingUpdated, EventBookingDeleted}, p.Handle)
}

// Handle queues event for delivery as a persistent JSON message. It never blocks.
func (p *AMQPPublisher) Handle(_ context.Context, event Event) error {
	if p.ctx.Err() != nil {
		return ErrPublisherClosed
	}
	msg, err := encodeMessage(event)
	if err != nil {
		return err
	}
	select {
	case p.outbox <- msg:
		return nil
	default:
		return fmt.Errorf("%w: dropped %s", ErrOutboxFull, event.Type)
	}
}

// Close stops the delivery loop, then releases the channel and connection.
// Events still queued are dropped.
func (p *AMQPPublisher) Close() error {
	p.cancel()
	p.wg.Wait()
	if n := len(p.outbox); n > 0 {
		p.logger.Warn("dropping undelivered events", zap.Int("count", n))
	}
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		err := p.conn.Close()
		p.conn = nil
		if err != nil && !errors.Is(err, amqp.ErrClosed) {
			return err
		}
	}
	return nil
}

func (p *AMQPPublisher) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case msg := <-p.outbox:
			if err := p.publish(p.ctx, msg); err != nil {
				p.logger.Warn("event not delivered", zap.String("event_type", msg.Type), zap.Error(err))
			}
		}
	}
}

func (p *AMQPPublisher) publish(ctx context.Context, msg amqp.Publishing) error {
	ch, err := p.channel(ctx)
	if err != nil {
		return err
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", msg.Type, err)
	}
	p.logger.Debug("event published", zap.String("event_type", msg.Type), zap.String("queue", p.queue))
	return nil
}

// channel returns an open channel, dialing with backoff when needed.
func (p *AMQPPublisher) channel(ctx context.Context) (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}

	backoff := retry.WithMaxRetries(amqpDialAttempts, retry.NewExponential(amqpDialBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if p.conn == nil || p.conn.IsClosed() {
			conn, err := amqp.Dial(p.url)
			if err != nil {
				p.logger.Warn("rabbitmq dial failed", zap.Error(err))
				return retry.RetryableError(err)
			}
			p.conn = conn
		}
		ch, err := p.conn.Channel()
		if err != nil {
			return retry.RetryableError(err)
		}
		if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			return fmt.Errorf("declare queue %s: %w", p.queue, err)
		}
		p.ch = ch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p.ch, nil
}

func encodeMessage(event Event) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Type:         string(event.Type),
		Timestamp:    event.Timestamp,
		Body:         body,
	}, nil
}
