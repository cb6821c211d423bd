package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Pesokrava/ratingfy/internal/domain"
	"github.com/Pesokrava/ratingfy/internal/pkg/logger"
	"github.com/Pesokrava/ratingfy/internal/pkg/metrics"
)

const (
	// Debounce window - collect events for same product within this duration
	debounceWindow = 1 * time.Second

	// Retry configuration
	maxRetries     = 3
	initialBackoff = 100 * time.Millisecond
)

// Recalculator rebuilds the rating summary of one product
type Recalculator interface {
	Recalculate(ctx context.Context, shop string, productID domain.ProductID) error
}

type productKey struct {
	shop      string
	productID domain.ProductID
}

// RatingWorker consumes review events and keeps rating summaries current
type RatingWorker struct {
	calculator Recalculator
	logger     *logger.Logger

	mu             sync.Mutex
	pendingUpdates map[productKey]*pendingUpdate
	shutdownCh     chan struct{}
	wg             sync.WaitGroup
	ctx            context.Context
	cancel         context.CancelFunc
}

type pendingUpdate struct {
	timestamp time.Time
	timer     *time.Timer
}

// NewRatingWorker creates a new rating worker
func NewRatingWorker(calculator Recalculator, logger *logger.Logger) *RatingWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &RatingWorker{
		calculator:     calculator,
		logger:         logger,
		pendingUpdates: make(map[productKey]*pendingUpdate),
		shutdownCh:     make(chan struct{}),
		ctx:            ctx,
		cancel:         cancel,
	}
}

// HandleEvent decodes a review event and schedules a recalculation for its product
func (w *RatingWorker) HandleEvent(data []byte) error {
	var event domain.ReviewEvent
	if err := json.Unmarshal(data, &event); err != nil {
		w.logger.Error("Failed to unmarshal review event", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.Shop == "" || event.ProductID == "" {
		w.logger.WithFields(map[string]any{
			"type":      event.Type,
			"review_id": event.ReviewID,
		}).Warn("Review event without shop or product, skipping")
		return nil
	}

	w.logger.WithFields(map[string]any{
		"type":       event.Type,
		"shop":       event.Shop,
		"product_id": event.ProductID.String(),
		"timestamp":  event.Timestamp,
	}).Debug("Received review event")

	w.scheduleUpdate(productKey{shop: event.Shop, productID: event.ProductID}, event.Timestamp)

	return nil
}

// scheduleUpdate coalesces events for the same product within the debounce window
func (w *RatingWorker) scheduleUpdate(key productKey, timestamp time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.shutdownCh:
		w.logger.Info("Worker shutting down, ignoring new event")
		return
	default:
	}

	existing, found := w.pendingUpdates[key]
	if found {
		if timestamp.Before(existing.timestamp) {
			w.logger.WithFields(map[string]any{
				"shop":        key.shop,
				"product_id":  key.productID.String(),
				"existing_ts": existing.timestamp,
				"event_ts":    timestamp,
			}).Debug("Ignoring stale event")
			return
		}
		existing.timer.Stop()
	} else {
		w.wg.Add(1)
	}

	update := &pendingUpdate{timestamp: timestamp}
	update.timer = time.AfterFunc(debounceWindow, func() {
		w.processUpdate(key, update)
	})
	w.pendingUpdates[key] = update
}

// processUpdate runs the recalculation with exponential backoff between attempts
func (w *RatingWorker) processUpdate(key productKey, update *pendingUpdate) {
	w.mu.Lock()
	if w.pendingUpdates[key] != update {
		// replaced by a newer event or cancelled by Shutdown
		w.mu.Unlock()
		return
	}
	delete(w.pendingUpdates, key)
	w.mu.Unlock()

	defer w.wg.Done()

	fields := map[string]any{
		"shop":       key.shop,
		"product_id": key.productID.String(),
	}

	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			w.logger.WithFields(fields).Warnf("Retrying rating update (attempt %d, backoff %s)", attempt+1, backoff)

			select {
			case <-time.After(backoff):
			case <-w.ctx.Done():
				w.logger.Info("Worker context cancelled, aborting retry")
				return
			}

			backoff *= 2
		}

		ctx, cancel := context.WithTimeout(w.ctx, 5*time.Second)
		err := w.calculator.Recalculate(ctx, key.shop, key.productID)
		cancel()

		if err == nil {
			metrics.RatingRecalculationsTotal.WithLabelValues("success").Inc()
			return
		}

		lastErr = err
		w.logger.WithFields(fields).Error("Failed to update rating", err)
	}

	metrics.RatingRecalculationsTotal.WithLabelValues("failure").Inc()
	w.logger.WithFields(fields).Error("Rating update failed after all retries", lastErr)
}

// Shutdown cancels pending timers and waits for in-flight updates to complete
func (w *RatingWorker) Shutdown(ctx context.Context) error {
	w.logger.Info("Shutting down rating worker...")

	close(w.shutdownCh)
	w.cancel()

	w.mu.Lock()
	pendingCount := len(w.pendingUpdates)
	for _, update := range w.pendingUpdates {
		update.timer.Stop()
		w.wg.Done()
	}
	w.pendingUpdates = make(map[productKey]*pendingUpdate)
	w.mu.Unlock()

	w.logger.WithFields(map[string]any{
		"cancelled_updates": pendingCount,
	}).Info("Cancelled pending updates")

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("All in-flight updates completed")
		return nil
	case <-ctx.Done():
		w.logger.Warn("Shutdown timeout reached, forcing exit")
		return ctx.Err()
	}
}

// GetPendingCount returns the number of pending updates
func (w *RatingWorker) GetPendingCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pendingUpdates)
}
