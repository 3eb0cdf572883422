package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rabbitmq/amqp091-go"
)

// Subscriber receives events from the exchange on a private, auto-deleted queue.
type Subscriber struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	queue   string
}

// NewSubscriber connects to url and binds a fresh queue to exchangeName for
// every routing key matching pattern ("#" for all events).
func NewSubscriber(url, exchangeName, pattern string) (*Subscriber, error) {
	conn, channel, err := dialExchange(url, exchangeName)
	if err != nil {
		return nil, err
	}
	s := &Subscriber{conn: conn, channel: channel}

	q, err := channel.QueueDeclare(
		"",    // name, server generated
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	s.queue = q.Name

	if err := channel.QueueBind(q.Name, pattern, exchangeName, false, nil); err != nil {
		s.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}
	return s, nil
}

// Consume delivers events to handler until ctx is done.
func (s *Subscriber) Consume(ctx context.Context, handler func(Event) error) error {
	msgs, err := s.channel.Consume(
		s.queue, // queue
		"",      // consumer
		false,   // auto-ack
		true,    // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	slog.InfoContext(ctx, "Started consuming events", "queue", s.queue)
	return consume(ctx, msgs, handler)
}

// consume acks handled deliveries, drops undecodable ones and requeues those
// the handler failed on.
func consume(ctx context.Context, msgs <-chan amqp091.Delivery, handler func(Event) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return errors.New("message channel closed")
			}

			e, err := FromJSON(delivery.Body)
			if err != nil {
				slog.ErrorContext(ctx, "Failed to unmarshal event", "error", err)
				delivery.Nack(false, false)
				continue
			}

			if err := handler(e); err != nil {
				slog.ErrorContext(ctx, "Failed to handle event", "error", err, "type", e.Type, "bill_id", e.BillID)
				delivery.Nack(false, true)
				continue
			}
			delivery.Ack(false)
		}
	}
}

func (s *Subscriber) Close() error {
	if s.channel != nil {
		s.channel.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
