package analytics

import "time"

// TopicLinkVisited is the topic visit events are published on.
const TopicLinkVisited = "link.visited"

// LinkVisitedEvent is emitted after a short link resolves successfully.
// It is published fire-and-forget from the redirect path and persisted
// asynchronously by the consumer.
type LinkVisitedEvent struct {
	Token     string    `json:"token"`
	IPAddress string    `json:"ipAddress"`
	VisitedAt time.Time `json:"visitedAt"`
}
