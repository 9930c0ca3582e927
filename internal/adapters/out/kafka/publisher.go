// Package kafka publishes outbox messages to a Kafka topic.
package kafka

import (
	"context"
	"errors"
	"strings"

	"basket/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// ErrNoBrokers is returned by NewPublisher when the broker list is empty.
var ErrNoBrokers = errors.New("kafka brokers are not configured")

// EventNameHeader carries the outbox message name.
const EventNameHeader = "event-name"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements ports.MessagePublisher. Messages are keyed by order id so
// every change of one order lands on the same partition in commit order.
type Publisher struct {
	writer messageWriter
}

// ParseBrokers splits a comma separated broker list and drops blanks.
func ParseBrokers(brokersCSV string) []string {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// NewPublisher creates a publisher writing to topic on brokers.
// Messages are partitioned by key, so events of one order stay in order.
// Returns ErrNoBrokers if brokers is empty.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}

	return newPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}), nil
}

func newPublisher(writer messageWriter) *Publisher {
	return &Publisher{writer: writer}
}

// Publish writes messages as one batch. The event name travels in the
// EventNameHeader header.
func (p *Publisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		batch = append(batch, kafka.Message{
			Key:   []byte(m.Key),
			Value: m.Payload,
			Time:  m.OccurredAt.UTC(),
			Headers: []kafka.Header{
				{Key: EventNameHeader, Value: []byte(m.Name)},
				{Key: "event-id", Value: []byte(m.ID.String())},
			},
		})
	}

	return p.writer.WriteMessages(ctx, batch...)
}

// Close flushes pending writes and releases the connection.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
