package publisher_test

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/gametheory-pro/gtpro/pkg/service/publisher"
	"github.com/m-mizutani/gt"
)

func TestNewKafka(t *testing.T) {
	_, err := publisher.NewKafka(nil, "crisis")
	gt.Value(t, err).NotNil()

	_, err = publisher.NewKafka([]string{"localhost:9092"}, "")
	gt.Value(t, err).NotNil()

	p, err := publisher.NewKafka([]string{"localhost:9092"}, "crisis")
	gt.NoError(t, err).Required()
	gt.NoError(t, p.Close())
}

func TestBuildMessage(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	alert := &model.CrisisAlert{
		ID:          "a1",
		Title:       "Border clash",
		Severity:    types.CrisisSeverityHigh,
		Region:      "Asia",
		Fingerprint: "fp-1",
	}

	msg, err := publisher.BuildMessage(alert, now)
	gt.NoError(t, err).Required()
	gt.Value(t, string(msg.Key)).Equal("fp-1")
	gt.Value(t, msg.Time).Equal(now)
	gt.Array(t, msg.Headers).Length(2)

	var decoded model.CrisisAlert
	gt.NoError(t, json.Unmarshal(msg.Value, &decoded)).Required()
	gt.Value(t, decoded.Title).Equal("Border clash")

	t.Run("falls back to id when fingerprint is empty", func(t *testing.T) {
		msg, err := publisher.BuildMessage(&model.CrisisAlert{ID: "a2"}, now)
		gt.NoError(t, err).Required()
		gt.Value(t, string(msg.Key)).Equal("a2")
	})
}

func TestNop(t *testing.T) {
	var p publisher.Publisher = publisher.Nop{}
	gt.NoError(t, p.PublishCrisisAlerts(context.Background(), []*model.CrisisAlert{{ID: "x"}}))
	gt.NoError(t, p.Close())
}

func TestKafkaIntegration(t *testing.T) {
	brokers := os.Getenv("TEST_KAFKA_BROKERS")
	if brokers == "" {
		t.Skip("TEST_KAFKA_BROKERS is not set")
	}

	p, err := publisher.NewKafka(strings.Split(brokers, ","), "gtpro-test-crisis")
	gt.NoError(t, err).Required()
	defer func() { gt.NoError(t, p.Close()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	gt.NoError(t, p.PublishCrisisAlerts(ctx, []*model.CrisisAlert{{ID: "it-1", Title: "integration"}}))
}
