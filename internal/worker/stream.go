package worker

import (
	"context"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	fetchBatch   = 10
	fetchWait    = 5 * time.Second
	fetchBackoff = 5 * time.Second
)

// MessageFetcher is the pull side of a JetStream subscription
type MessageFetcher interface {
	Fetch(batch int, opts ...nats.PullOpt) ([]*nats.Msg, error)
}

// Consume pulls review events until ctx is cancelled. Messages the worker
// cannot decode are nacked; JetStream redelivers them with backoff until
// MaxDeliver is reached.
func (w *RatingWorker) Consume(ctx context.Context, sub MessageFetcher) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msgs, err := sub.Fetch(fetchBatch, nats.MaxWait(fetchWait))
		if err != nil {
			if errors.Is(err, nats.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			w.logger.Error("Failed to fetch messages from JetStream", err)

			select {
			case <-time.After(fetchBackoff):
			case <-ctx.Done():
				return
			}
			continue
		}

		for _, msg := range msgs {
			w.handleMessage(msg)
		}
	}
}

func (w *RatingWorker) handleMessage(msg *nats.Msg) {
	if err := w.HandleEvent(msg.Data); err != nil {
		if nakErr := msg.Nak(); nakErr != nil {
			w.logger.Error("Failed to NACK message", nakErr)
		}
		return
	}

	if ackErr := msg.Ack(); ackErr != nil {
		w.logger.Error("Failed to ACK message", ackErr)
	}
}
