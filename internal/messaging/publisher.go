package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publish sends one typed event to its topic. Handlers hold a Publish
// instead of the raw watermill publisher so they cannot pick the wrong
// topic or payload shape for an event.
type Publish[T any] func(event *T) error

// NewPublishFunc binds a topic and event type to a publisher. Events
// are serialized as JSON and tagged with a content-type so consumers
// on other stacks can decode them.
func NewPublishFunc[T any](publisher message.Publisher, topic string) Publish[T] {
	return func(event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal %s event: %w", topic, err)
		}

		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.Metadata.Set("content-type", "application/json")

		if err := publisher.Publish(topic, msg); err != nil {
			return fmt.Errorf("publish %s: %w", topic, err)
		}

		return nil
	}
}

// PublisherGroup adapts a watermill publisher's Close to the Shutdown
// signature the injector tears down on exit.
type PublisherGroup struct {
	publisher message.Publisher
}

// NewPublisherGroup wraps a publisher for injector-managed teardown.
func NewPublisherGroup(publisher message.Publisher) *PublisherGroup {
	return &PublisherGroup{publisher: publisher}
}

// Publisher exposes the wrapped publisher for binding publish funcs.
func (g *PublisherGroup) Publisher() message.Publisher {
	return g.publisher
}

// Shutdown closes the wrapped publisher.
func (g *PublisherGroup) Shutdown() error {
	return g.publisher.Close()
}
