package mailer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"

	"github.com/bengalspicy/rms/pkg/event"
)

// MailRequestSubscriber consumes mail requests off the bus and hands them to
// the sender. Delivery failures are logged and dropped, never retried back
// into the request path.
type MailRequestSubscriber struct {
	subscriber events.Subscriber
	sender     Sender
	logger     apt.Logger
}

func NewMailRequestSubscriber(subscriber events.Subscriber, sender Sender, logger apt.Logger) *MailRequestSubscriber {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &MailRequestSubscriber{
		subscriber: subscriber,
		sender:     sender,
		logger:     logger,
	}
}

func (s *MailRequestSubscriber) Start(ctx context.Context) error {
	s.logger.Info("Starting MailRequestSubscriber for topic: " + event.MailRequestsTopic)

	if err := s.subscriber.Subscribe(ctx, event.MailRequestsTopic, s.handleEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", event.MailRequestsTopic, err)
	}

	return nil
}

func (s *MailRequestSubscriber) Stop(ctx context.Context) error {
	return nil
}

func (s *MailRequestSubscriber) handleEvent(ctx context.Context, msg []byte) error {
	var evt event.MailRequestEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		s.logger.Errorf("Failed to unmarshal mail request: %v", err)
		return nil
	}

	if err := s.sender.Send(ctx, evt); err != nil {
		s.logger.Error("mail delivery failed", "error", err, "kind", evt.Kind, "to", evt.Email)
	}
	return nil
}
