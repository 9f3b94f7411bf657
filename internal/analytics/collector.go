package analytics

import (
	"context"
	"log/slog"

	"github.com/retriva/retriva/pkg/kafka"
)

// Collector buffers search events and publishes them to Kafka from a
// single background goroutine. Track never blocks the query path: when
// the buffer is full, events are dropped with a warning.
type Collector struct {
	producer *kafka.Producer
	eventCh  chan SearchEvent
	logger   *slog.Logger
	done     chan struct{}
}

// NewCollector creates a Collector publishing through producer.
func NewCollector(producer *kafka.Producer, bufferSize int) *Collector {
	if bufferSize <= 0 {
		bufferSize = 10000
	}
	return &Collector{
		producer: producer,
		eventCh:  make(chan SearchEvent, bufferSize),
		logger:   slog.Default().With("component", "analytics-collector"),
		done:     make(chan struct{}),
	}
}

// Start launches the publish loop. It drains buffered events on shutdown.
func (c *Collector) Start(ctx context.Context) {
	go func() {
		defer close(c.done)
		for {
			select {
			case event, ok := <-c.eventCh:
				if !ok {
					return
				}
				if err := c.producer.Publish(ctx, kafka.Event{
					Key:   string(event.Type),
					Value: event,
				}); err != nil {
					c.logger.Error("failed to publish search event", "error", err)
				}
			case <-ctx.Done():
				c.drainRemaining()
				return
			}
		}
	}()
	c.logger.Info("analytics collector started", "buffer_size", cap(c.eventCh))
}

// Track enqueues an event for publishing.
func (c *Collector) Track(event SearchEvent) {
	select {
	case c.eventCh <- event:
	default:
		c.logger.Warn("search event dropped (buffer full)")
	}
}

// Close stops accepting events and waits for the publish loop to finish.
func (c *Collector) Close() {
	close(c.eventCh)
	<-c.done
}

func (c *Collector) drainRemaining() {
	for {
		select {
		case event, ok := <-c.eventCh:
			if !ok {
				return
			}
			if err := c.producer.Publish(context.Background(), kafka.Event{
				Key:   string(event.Type),
				Value: event,
			}); err != nil {
				c.logger.Error("failed to publish remaining event", "error", err)
			}
		default:
			return
		}
	}
}
