package config

import (
	"strings"

	"github.com/gametheory-pro/gtpro/pkg/service/publisher"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Kafka holds the crisis alert topic configuration
type Kafka struct {
	brokers []string
	topic   string
}

func (x *Kafka) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "kafka-brokers",
			Usage:       "Kafka broker addresses receiving crisis alerts (host:port)",
			Category:    "Kafka",
			Sources:     cli.EnvVars("GTPRO_KAFKA_BROKERS"),
			Destination: &x.brokers,
		},
		&cli.StringFlag{
			Name:        "kafka-topic",
			Usage:       "Kafka topic of crisis alerts",
			Category:    "Kafka",
			Value:       "gtpro.crisis-alerts",
			Sources:     cli.EnvVars("GTPRO_KAFKA_TOPIC"),
			Destination: &x.topic,
		},
	}
}

// Configure returns a Kafka publisher, or publisher.Nop when no broker is set
func (x *Kafka) Configure() (publisher.Publisher, error) {
	var brokers []string
	for _, b := range x.brokers {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return publisher.Nop{}, nil
	}

	p, err := publisher.NewKafka(brokers, x.topic)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure kafka publisher")
	}
	return p, nil
}
