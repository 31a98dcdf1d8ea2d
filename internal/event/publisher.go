package event

import (
	"context"
	"cyberlearn_backend/internal/model"
	"cyberlearn_backend/pkg/logger"
	"encoding/json"
	"sync"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const (
	AssessmentGenerated = "assessment.generated"
	AssessmentCompleted = "assessment.completed"
	PlanGenerated       = "learning_plan.generated"
	PlanApproved        = "learning_plan.approved"
	SessionStarted      = "learning_session.started"
	AchievementUnlocked = "achievement.unlocked"
)

type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
	Close() error
}

type Envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func encode(eventType string, payload any) ([]byte, error) {
	return json.Marshal(Envelope{
		ID:         model.GenerateUUID(),
		Type:       eventType,
		OccurredAt: model.Now(),
		Payload:    payload,
	})
}

// AMQPPublisher sends events to a topic exchange, routed by event type.
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewAMQPPublisher(amqpURL, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &AMQPPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(_ context.Context, eventType string, payload any) error {
	body, err := encode(eventType, payload)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.Publish(
		p.exchange,
		eventType,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher only logs at debug level. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(_ context.Context, eventType string, payload any) error {
	logger.Log.Debug("Event", zap.String("type", eventType), zap.Any("payload", payload))
	return nil
}

func (NopPublisher) Close() error { return nil }

// New connects to the broker when amqpURL is set and otherwise returns a
// NopPublisher. A broker that cannot be reached is logged and skipped.
func New(amqpURL, exchange string) Publisher {
	if amqpURL == "" {
		return NopPublisher{}
	}
	p, err := NewAMQPPublisher(amqpURL, exchange)
	if err != nil {
		logger.Log.Warn("Event broker unavailable, events will not be published", zap.Error(err))
		return NopPublisher{}
	}
	return p
}
