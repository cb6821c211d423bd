package events

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/ratingfy/internal/pkg/logger"
)

// JetStreamPublisher is the publishing half of nats.JetStreamContext
type JetStreamPublisher interface {
	Publish(subj string, data []byte, opts ...nats.PubOpt) (*nats.PubAck, error)
}

// Publisher handles publishing events to NATS JetStream
type Publisher struct {
	js     JetStreamPublisher
	logger *logger.Logger
}

// NewPublisher creates a new JetStream publisher
func NewPublisher(js JetStreamPublisher, log *logger.Logger) *Publisher {
	return &Publisher{
		js:     js,
		logger: log,
	}
}

// Publish publishes a message to a NATS JetStream subject.
// It returns once the stream has stored the message.
func (p *Publisher) Publish(ctx context.Context, subject string, data []byte) error {
	pubAck, err := p.js.Publish(subject, data, nats.Context(ctx))
	if err != nil {
		p.logger.WithFields(map[string]interface{}{
			"subject": subject,
		}).Error("Failed to publish message to JetStream", err)
		return fmt.Errorf("failed to publish to JetStream: %w", err)
	}

	p.logger.WithFields(map[string]interface{}{
		"subject":  subject,
		"stream":   pubAck.Stream,
		"sequence": pubAck.Sequence,
	}).Debug("Published message to JetStream")

	return nil
}
