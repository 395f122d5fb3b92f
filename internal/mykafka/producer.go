package mykafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

const writeTimeout = 5 * time.Second

type Publisher interface {
	PublishEvent(ctx context.Context, key string, event any) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer hands events to an async kafka-go writer. PublishEvent returns once
// the message is queued; delivery failures are logged by the completion
// callback.
type Producer struct {
	writer messageWriter
	topic  string
	log    *slog.Logger
}

func NewProducer(brokers []string, topic string) *Producer {
	p := &Producer{topic: topic, log: slog.Default()}
	p.writer = &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           writeTimeout,
		Async:                  true,
		Completion:             p.completed,
	}
	return p
}

func (p *Producer) completed(msgs []kafka.Message, err error) {
	if err == nil {
		return
	}
	l := p.log
	if l == nil {
		l = slog.Default()
	}
	for _, m := range msgs {
		l.Warn("event_publish_failed", "topic", p.topic, "key", string(m.Key), "error", err)
	}
}

// New returns a Nop publisher when no brokers are configured.
func New(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		return Nop{}
	}
	return NewProducer(brokers, topic)
}

func (p *Producer) PublishEvent(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: data}); err != nil {
		return fmt.Errorf("kafka: write to %s failed: %w", p.topic, err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

type Nop struct{}

func (Nop) PublishEvent(context.Context, string, any) error { return nil }
func (Nop) Close() error                                    { return nil }
