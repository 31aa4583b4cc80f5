package pkg

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event names published to the membership topic.
const (
	EventCommunityCreated = "community.created"
	EventMemberAdded      = "member.added"
	EventMemberRemoved    = "member.removed"
)

type Event struct {
	Type        string    `json:"type"`
	CommunityID string    `json:"community_id"`
	UserID      string    `json:"user_id,omitempty"`
	RoleID      string    `json:"role_id,omitempty"`
	MemberID    string    `json:"member_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type KafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(cfg KafkaConfig) *KafkaProducer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return &KafkaProducer{writer: w}
}

func (p *KafkaProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// Publish keys messages by community so per-community ordering holds.
func (p *KafkaProducer) Publish(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.CommunityID),
		Value: value,
	})
}
