package pubsub

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"midatopay/internal/domain/service"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	defaultIdentityExchange = "identity.events"
	amqpDialTimeout         = 10 * time.Second
)

// rabbitMQPublisher implements EventPublisher on a durable topic exchange. The
// event type is the routing key.
type rabbitMQPublisher struct {
	conn     *amqp.Connection
	exchange string
	logger   *slog.Logger

	mu      sync.Mutex
	channel *amqp.Channel
}

// NewRabbitMQPublisher dials the broker and declares the exchange
func NewRabbitMQPublisher(amqpURL, exchange string, logger *slog.Logger) (service.EventPublisher, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}
	if exchange == "" {
		exchange = defaultIdentityExchange
	}

	conn, err := amqp.DialConfig(cleanURL, amqp.Config{Dial: amqp.DefaultDial(amqpDialTimeout)})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to RabbitMQ")
	}

	p := &rabbitMQPublisher{conn: conn, exchange: exchange, logger: logger}
	if err := p.reopenChannel(); err != nil {
		conn.Close()

		return nil, err
	}

	logger.Info("RabbitMQ publisher initialized", slog.String("exchange", exchange))

	return p, nil
}

// reopenChannel must be called with mu held or before the publisher is shared
func (p *rabbitMQPublisher) reopenChannel() error {
	ch, err := p.conn.Channel()
	if err != nil {
		return errors.Wrap(err, "failed to open channel")
	}
	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()

		return errors.Wrapf(err, "failed to declare exchange %s", p.exchange)
	}
	p.channel = ch

	return nil
}

// PublishIdentityEvent publishes with one channel reopen on failure
func (p *rabbitMQPublisher) PublishIdentityEvent(ctx context.Context, event *service.IdentityEvent) error {
	encoded, err := encodeEvent(event)
	if err != nil {
		return err
	}

	headers := amqp.Table{}
	for k, v := range encoded.attributes {
		headers[k] = v
	}
	msg := amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   event.OccurredAt,
		Headers:     headers,
		Body:        encoded.data,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, event.Type, false, false, msg)
	if err == nil {
		return nil
	}

	p.logger.WarnContext(ctx, "RabbitMQ publish failed, reopening channel", slog.Any("error", err))
	if reopenErr := p.reopenChannel(); reopenErr != nil {
		return errors.Wrap(err, reopenErr.Error())
	}

	return errors.WithStack(p.channel.PublishWithContext(ctx, p.exchange, event.Type, false, false, msg))
}

// Close closes the channel and the connection
func (p *rabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		p.channel.Close()
	}

	return errors.WithStack(p.conn.Close())
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")

	u, err := url.Parse(clean)
	if err != nil {
		return "", errors.Wrap(err, "invalid AMQP url")
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}

	return clean, nil
}
