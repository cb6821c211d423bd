package events

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/ratingfy/internal/domain"
	"github.com/Pesokrava/ratingfy/internal/pkg/logger"
)

// Consumer receives events over a plain NATS subscription. It does not take
// part in the work queue, so the rating worker still gets every message.
type Consumer struct {
	nc     *nats.Conn
	logger *logger.Logger
	sub    *nats.Subscription
}

// NewConsumer creates a new NATS consumer
func NewConsumer(nc *nats.Conn, log *logger.Logger) *Consumer {
	return &Consumer{
		nc:     nc,
		logger: log,
	}
}

// Subscribe subscribes to a NATS subject and processes messages
func (c *Consumer) Subscribe(subject string, handler func(data []byte) error) error {
	sub, err := c.nc.Subscribe(subject, func(msg *nats.Msg) {
		c.logger.Debugf("Received message on subject %s", subject)

		if err := handler(msg.Data); err != nil {
			c.logger.Errorf(err, "Failed to handle message on subject %s", subject)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to subject %s: %w", subject, err)
	}

	c.sub = sub
	c.logger.Infof("Subscribed to NATS subject: %s", subject)
	return nil
}

// Close drains the subscription
func (c *Consumer) Close() {
	if c.sub != nil {
		if err := c.sub.Drain(); err != nil {
			c.logger.Warnf("Failed to drain NATS subscription: %v", err)
		}
	}
}

// NotificationHandler logs every review event. Storefront submissions that
// wait for moderation are raised to warn level so they stand out.
func NotificationHandler(log *logger.Logger) func(data []byte) error {
	return func(data []byte) error {
		var event domain.ReviewEvent
		if err := json.Unmarshal(data, &event); err != nil {
			log.Error("Failed to unmarshal review event", err)
			return fmt.Errorf("failed to unmarshal event: %w", err)
		}

		entry := log.WithFields(map[string]interface{}{
			"type":       event.Type,
			"shop":       event.Shop,
			"product_id": event.ProductID.String(),
			"review_id":  event.ReviewID,
			"status":     event.Status,
			"author":     event.Author,
		})

		if awaitsModeration(event) {
			entry.Warn("New review awaiting moderation")
			return nil
		}

		entry.Info("Review event")
		return nil
	}
}

func awaitsModeration(event domain.ReviewEvent) bool {
	return event.Type == domain.EventReviewCreated &&
		event.Status == domain.StatusPending &&
		event.Author != domain.AuthorAdministrator
}
