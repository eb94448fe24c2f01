package pubsub

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"midatopay/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// identityMessage is the transport-neutral form of an identity event.
type identityMessage struct {
	data       []byte
	attributes map[string]string
	// orderingKey keeps events for one user in publish order.
	orderingKey string
}

func encodeEvent(event *service.IdentityEvent) (*identityMessage, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	attributes := map[string]string{
		"event_type": event.Type,
		"user_id":    event.UserID,
		"source":     event.Source,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return &identityMessage{
		data:        data,
		attributes:  attributes,
		orderingKey: event.UserID,
	}, nil
}

// PubSubPushMessage is the body Google Pub/Sub POSTs to push subscriptions.
type PubSubPushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
		OrderingKey string            `json:"orderingKey,omitempty"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

const localSubscription = "projects/local/subscriptions/identity-events"

func newPushMessage(msg *identityMessage, publishedAt time.Time) PubSubPushMessage {
	push := PubSubPushMessage{Subscription: localSubscription}
	push.Message.Data = base64.StdEncoding.EncodeToString(msg.data)
	push.Message.Attributes = msg.attributes
	push.Message.MessageID = uuid.NewString()
	push.Message.PublishTime = publishedAt.UTC().Format(time.RFC3339Nano)
	push.Message.OrderingKey = msg.orderingKey

	return push
}
