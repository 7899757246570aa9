package pkg

import (
	"context"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// NATSStream is the consumer side of a durable JetStream-backed topic. The
// stream retains messages published to its subject while no consumer is
// running, so workers can go down without losing queued work.
type NATSStream struct {
	conn     *nats.Conn
	js       jetstream.JetStream
	stream   jetstream.Stream
	consumer jetstream.Consumer
	logger   apt.Logger
	cfg      NATSStreamConfig
}

// NATSStreamConfig configures a NATSStream instance.
type NATSStreamConfig struct {
	URL          string        // NATS server URL
	StreamName   string        // JetStream stream name (e.g., "MAIL_REQUESTS")
	Topic        string        // Subject the stream captures (e.g., "mail.requests")
	ConsumerName string        // Durable consumer name for this worker
	MaxAge       time.Duration // How long to retain undelivered messages
}

// NewNATSStream connects and ensures the stream exists. Creating the stream up
// front means messages published before any consumer attaches are retained.
func NewNATSStream(cfg NATSStreamConfig, logger apt.Logger) (*NATSStream, error) {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	conn, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	stream, err := js.CreateOrUpdateStream(context.Background(), jetstream.StreamConfig{
		Name:     cfg.StreamName,
		Subjects: []string{cfg.Topic},
		MaxAge:   cfg.MaxAge,
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create/update stream %s: %w", cfg.StreamName, err)
	}

	return &NATSStream{
		conn:   conn,
		js:     js,
		stream: stream,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// Subscribe implements events.Subscriber. The topic argument is ignored; the
// consumer is bound to the subject the stream was created with. A handler
// error naks the message for redelivery, nil acks it.
func (s *NATSStream) Subscribe(ctx context.Context, topic string, handler events.HandlerFunc) error {
	consumer, err := s.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Name:          s.cfg.ConsumerName,
		Durable:       s.cfg.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		DeliverPolicy: jetstream.DeliverAllPolicy,
		FilterSubject: s.cfg.Topic,
	})
	if err != nil {
		return fmt.Errorf("failed to create/update consumer %s: %w", s.cfg.ConsumerName, err)
	}
	s.consumer = consumer

	_, err = consumer.Consume(func(msg jetstream.Msg) {
		if err := handler(ctx, msg.Data()); err != nil {
			s.logger.Error("stream handler failed", "error", err, "subject", msg.Subject())
			msg.Nak()
			return
		}
		msg.Ack()
	})
	return err
}

// Close closes the NATS connection.
func (s *NATSStream) Close() error {
	s.conn.Close()
	return nil
}
