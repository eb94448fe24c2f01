package pubsub

import (
	"context"
	"log/slog"

	"midatopay/internal/domain/service"

	"github.com/pkg/errors"
	"gocloud.dev/pubsub"
	_ "gocloud.dev/pubsub/mempubsub" // registers mem://
)

// goCloudPublisher implements EventPublisher over any gocloud.dev pubsub topic URL
type goCloudPublisher struct {
	topic  *pubsub.Topic
	logger *slog.Logger
}

// NewGoCloudPublisher opens the topic named by topicURL, e.g. "mem://identity"
func NewGoCloudPublisher(ctx context.Context, topicURL string, logger *slog.Logger) (service.EventPublisher, error) {
	topic, err := pubsub.OpenTopic(ctx, topicURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open topic %s", topicURL)
	}

	logger.Info("Go CDK publisher initialized", slog.String("topic_url", topicURL))

	return &goCloudPublisher{topic: topic, logger: logger}, nil
}

// PublishIdentityEvent sends the event as a single message
func (p *goCloudPublisher) PublishIdentityEvent(ctx context.Context, event *service.IdentityEvent) error {
	msg, err := encodeEvent(event)
	if err != nil {
		return err
	}

	if err := p.topic.Send(ctx, &pubsub.Message{Body: msg.data, Metadata: msg.attributes}); err != nil {
		return errors.WithStack(err)
	}

	p.logger.Debug("[GoCloudPubSub] Identity event published",
		slog.String("event_type", event.Type),
		slog.String("user_id", event.UserID),
	)

	return nil
}

// Close flushes pending sends
func (p *goCloudPublisher) Close() error {
	return errors.WithStack(p.topic.Shutdown(context.Background()))
}
