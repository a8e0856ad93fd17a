package config

import (
	"log/slog"

	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/gametheory-pro/gtpro/pkg/service/slack"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Slack holds the bot credentials used for crisis alert notifications
type Slack struct {
	botToken    string `masq:"secret"`
	channel     string
	minSeverity string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token used to post crisis alerts",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("GTPRO_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID receiving crisis alerts",
			Category:    "Slack",
			Destination: &x.channel,
			Sources:     cli.EnvVars("GTPRO_SLACK_CHANNEL"),
		},
		&cli.StringFlag{
			Name:        "slack-min-severity",
			Usage:       "Lowest crisis severity posted to Slack [Low|Medium|High|Critical]",
			Category:    "Slack",
			Value:       types.CrisisSeverityHigh.String(),
			Destination: &x.minSeverity,
			Sources:     cli.EnvVars("GTPRO_SLACK_MIN_SEVERITY"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.String("channel", x.channel),
		slog.String("min-severity", x.minSeverity),
	)
}

// IsConfigured reports whether a bot token is set
func (x *Slack) IsConfigured() bool {
	return x.botToken != ""
}

// MinSeverity returns the parsed minimum severity
func (x *Slack) MinSeverity() (types.CrisisSeverity, error) {
	sev, err := types.ParseCrisisSeverity(x.minSeverity)
	if err != nil {
		return "", goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V(FlagKey, "slack-min-severity"))
	}
	return sev, nil
}

// Configure creates the Slack service. Returns nil if no bot token is set.
func (x *Slack) Configure() (slack.Service, error) {
	if !x.IsConfigured() {
		return nil, nil
	}
	if x.channel == "" {
		return nil, goerr.Wrap(ErrMissingCredentials, "slack-channel is required with slack-bot-token",
			goerr.V(FlagKey, "slack-channel"))
	}

	svc, err := slack.New(x.botToken, x.channel)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack service")
	}
	return svc, nil
}
