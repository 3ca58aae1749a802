package analytics

import (
	"context"
	"errors"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortlink-go/internal/messaging"
	"github.com/serroba/shortlink-go/internal/shortlink"
	"go.uber.org/zap"
)

// VisitRecorder persists LinkVisitedEvents through the short link
// service.
type VisitRecorder struct {
	service *shortlink.Service
	logger  *zap.Logger
}

// NewVisitRecorder creates a new visit recorder.
func NewVisitRecorder(service *shortlink.Service, logger *zap.Logger) *VisitRecorder {
	return &VisitRecorder{
		service: service,
		logger:  logger,
	}
}

// Handle records one visit. A link deleted between redirect and event
// delivery is dropped rather than redelivered forever.
func (r *VisitRecorder) Handle(ctx context.Context, event *LinkVisitedEvent) error {
	err := r.service.RecordVisit(ctx, shortlink.Token(event.Token), event.IPAddress)
	if errors.Is(err, shortlink.ErrNotFound) {
		r.logger.Warn("dropping visit for missing link",
			zap.String("token", event.Token),
		)

		return nil
	}

	return err
}

// Consumer builds a messaging consumer bound to the visit topic.
func (r *VisitRecorder) Consumer(subscriber message.Subscriber) *messaging.Consumer[LinkVisitedEvent] {
	return messaging.NewConsumer(subscriber, TopicLinkVisited, r.Handle, r.logger)
}
