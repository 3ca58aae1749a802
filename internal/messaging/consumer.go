package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// Handler processes one decoded event. Returning nil acks the message;
// returning an error nacks it, which redelivers. Handlers that hit a
// permanently unprocessable event must swallow the error themselves or
// the broker will redeliver it forever.
type Handler[T any] func(ctx context.Context, event *T) error

// Consumer drains one topic through a typed handler, decoding each
// message payload as JSON into T.
type Consumer[T any] struct {
	subscriber message.Subscriber
	topic      string
	handler    Handler[T]
	logger     *zap.Logger
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewConsumer binds a topic and handler to a subscriber. The consumer
// does nothing until Start is called.
func NewConsumer[T any](
	subscriber message.Subscriber,
	topic string,
	handler Handler[T],
	logger *zap.Logger,
) *Consumer[T] {
	return &Consumer[T]{
		subscriber: subscriber,
		topic:      topic,
		handler:    handler,
		logger:     logger.With(zap.String("topic", topic)),
		done:       make(chan struct{}),
	}
}

// Topic returns the topic this consumer drains.
func (c *Consumer[T]) Topic() string {
	return c.topic
}

// Start subscribes and begins draining messages in the background.
func (c *Consumer[T]) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	msgs, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", c.topic, err)
	}

	go c.drain(ctx, msgs)

	return nil
}

func (c *Consumer[T]) drain(ctx context.Context, msgs <-chan *message.Message) {
	defer close(c.done)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}

			if err := c.process(ctx, msg); err != nil {
				c.logger.Error("event not processed", zap.Error(err))
				msg.Nack()

				continue
			}

			msg.Ack()
		}
	}
}

func (c *Consumer[T]) process(ctx context.Context, msg *message.Message) error {
	var event T
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	return c.handler(ctx, &event)
}

// Shutdown stops draining and waits for the in-flight message, if any,
// to finish.
func (c *Consumer[T]) Shutdown() error {
	if c.cancel != nil {
		c.cancel()
	}

	<-c.done

	return nil
}
