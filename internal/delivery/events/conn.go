package events

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/ratingfy/internal/pkg/logger"
)

// Connect opens a NATS connection that keeps reconnecting for the life of
// the process
func Connect(url, name string, log *logger.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warnf("Disconnected from NATS: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Infof("Reconnected to NATS at %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.WithFields(map[string]any{
		"url":  url,
		"name": name,
	}).Info("Connected to NATS")

	return nc, nil
}
