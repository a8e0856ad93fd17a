package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/segmentio/kafka-go"
)

// Publisher fans crisis alerts out to downstream consumers
type Publisher interface {
	PublishCrisisAlerts(ctx context.Context, alerts []*model.CrisisAlert) error
	Close() error
}

// Kafka publishes each alert as a JSON message keyed by its fingerprint
type Kafka struct {
	writer *kafka.Writer
}

// NewKafka creates a synchronous writer for topic on brokers
func NewKafka(brokers []string, topic string) (*Kafka, error) {
	if len(brokers) == 0 {
		return nil, goerr.New("at least one Kafka broker is required")
	}
	if topic == "" {
		return nil, goerr.New("Kafka topic is required")
	}

	return &Kafka{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 250 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}, nil
}

func (k *Kafka) PublishCrisisAlerts(ctx context.Context, alerts []*model.CrisisAlert) error {
	if len(alerts) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(alerts))
	for _, alert := range alerts {
		msg, err := buildMessage(alert, time.Now().UTC())
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	if err := k.writer.WriteMessages(ctx, msgs...); err != nil {
		return goerr.Wrap(err, "failed to publish crisis alerts",
			goerr.V("topic", k.writer.Topic), goerr.V("count", len(msgs)))
	}
	return nil
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}

func buildMessage(alert *model.CrisisAlert, now time.Time) (kafka.Message, error) {
	body, err := json.Marshal(alert)
	if err != nil {
		return kafka.Message{}, goerr.Wrap(err, "failed to marshal crisis alert", goerr.V("alert_id", alert.ID))
	}

	key := alert.Fingerprint
	if key == "" {
		key = alert.ID
	}

	return kafka.Message{
		Key:   []byte(key),
		Value: body,
		Time:  now,
		Headers: []kafka.Header{
			{Key: "severity", Value: []byte(alert.Severity)},
			{Key: "region", Value: []byte(alert.Region)},
		},
	}, nil
}

// Nop drops every alert. Used when no broker is configured.
type Nop struct{}

func (Nop) PublishCrisisAlerts(context.Context, []*model.CrisisAlert) error { return nil }
func (Nop) Close() error { return nil }
