package messaging

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Runnable is a component with a start/shutdown lifecycle.
type Runnable interface {
	Start(ctx context.Context) error
	Shutdown() error
}

// ConsumerGroup owns a set of consumers and the subscriber they share,
// starting and stopping them as one unit.
type ConsumerGroup struct {
	consumers  []Runnable
	subscriber message.Subscriber
	logger     *zap.Logger
}

// NewConsumerGroup creates an empty group over a shared subscriber.
func NewConsumerGroup(subscriber message.Subscriber, logger *zap.Logger) *ConsumerGroup {
	return &ConsumerGroup{
		subscriber: subscriber,
		logger:     logger,
	}
}

// Add registers consumers to start with the group.
func (g *ConsumerGroup) Add(consumers ...Runnable) {
	g.consumers = append(g.consumers, consumers...)
}

// Start starts every consumer. On failure the consumers already
// running are stopped again so the group never starts half-way.
func (g *ConsumerGroup) Start(ctx context.Context) error {
	for i, consumer := range g.consumers {
		if err := consumer.Start(ctx); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = g.consumers[j].Shutdown()
			}

			return fmt.Errorf("start consumer %d: %w", i, err)
		}
	}

	g.logger.Info("consumers running", zap.Int("count", len(g.consumers)))

	return nil
}

// Shutdown stops every consumer, then closes the shared subscriber.
// All teardown errors are reported, not just the first.
func (g *ConsumerGroup) Shutdown() error {
	g.logger.Info("stopping consumers")

	var errs error

	for _, consumer := range g.consumers {
		errs = multierr.Append(errs, consumer.Shutdown())
	}

	return multierr.Append(errs, g.subscriber.Close())
}
