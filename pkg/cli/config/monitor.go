package config

import (
	"time"

	"github.com/gametheory-pro/gtpro/pkg/service/worker"
	"github.com/m-mizutani/goerr/v2"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v3"
)

// Monitor holds the crisis monitoring schedule
type Monitor struct {
	schedule string
	timeout  time.Duration
}

func (x *Monitor) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "monitor-schedule",
			Usage:       "Cron spec of the crisis monitoring cycle (e.g. \"@every 5m\")",
			Category:    "Monitor",
			Value:       worker.DefaultSchedule,
			Sources:     cli.EnvVars("GTPRO_MONITOR_SCHEDULE"),
			Destination: &x.schedule,
		},
		&cli.DurationFlag{
			Name:        "monitor-timeout",
			Usage:       "Timeout of a single monitoring cycle",
			Category:    "Monitor",
			Value:       2 * time.Minute,
			Sources:     cli.EnvVars("GTPRO_MONITOR_TIMEOUT"),
			Destination: &x.timeout,
		},
	}
}

// Configure validates the schedule and returns a crisis monitor over r
func (x *Monitor) Configure(r worker.Refresher) (*worker.CrisisMonitor, error) {
	if _, err := cron.ParseStandard(x.schedule); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V(FlagKey, "monitor-schedule"))
	}

	return worker.NewCrisisMonitor(r,
		worker.WithSchedule(x.schedule),
		worker.WithCycleTimeout(x.timeout),
	), nil
}
