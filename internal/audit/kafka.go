package audit

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaSink publishes events as JSON, keyed by appointment id so every event
// of one appointment lands on the same partition.
type KafkaSink struct {
	writer *kafka.Writer
}

type kafkaMessage struct {
	Action     string         `json:"action"`
	Entity     string         `json:"entity"`
	EntityID   string         `json:"entity_id,omitempty"`
	UserID     *uint          `json:"user_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

func NewKafkaSink(brokers, topic string) *KafkaSink {
	return &KafkaSink{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(SplitBrokers(brokers)...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 5 * time.Second,
		},
	}
}

func (k *KafkaSink) Write(ctx context.Context, ev Event) error {
	msg := kafkaMessage{
		Action:     ev.Action,
		Entity:     ev.Entity,
		UserID:     ev.UserID,
		Metadata:   ev.Metadata,
		OccurredAt: ev.OccurredAt,
	}

	var key []byte
	if ev.EntityID != nil {
		msg.EntityID = ev.EntityID.String()
		key = []byte(msg.EntityID)
	}

	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.Action)},
		},
	})
}

func (k *KafkaSink) Close() error {
	return k.writer.Close()
}

func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
