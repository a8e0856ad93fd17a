package slack

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// maxSectionBytes is the Block Kit limit for a section text
const maxSectionBytes = 3000

// client implements Service interface
type client struct {
	api     *slack.Client
	channel string
	apiURL  string
}

// Option is a functional option for client configuration
type Option func(*client)

// WithAPIURL points the client at another Slack API endpoint, used by tests
func WithAPIURL(u string) Option {
	return func(c *client) {
		c.apiURL = u
	}
}

// New creates a new Slack service posting to channel with the bot token
func New(token, channel string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channel == "" {
		return nil, goerr.New("Slack channel is required")
	}

	c := &client{channel: channel}
	for _, opt := range opts {
		opt(c)
	}

	var apiOpts []slack.Option
	if c.apiURL != "" {
		apiOpts = append(apiOpts, slack.OptionAPIURL(c.apiURL))
	}
	c.api = slack.New(token, apiOpts...)

	return c, nil
}

func (c *client) PostCrisisAlert(ctx context.Context, alert *model.CrisisAlert) (string, error) {
	blocks := buildAlertBlocks(alert)
	fallbackText := fmt.Sprintf("[%s] %s", alert.Severity, alert.Title)

	_, ts, err := c.api.PostMessageContext(ctx, c.channel,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(fallbackText, false),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post crisis alert",
			goerr.V("channel", c.channel), goerr.V("alert_id", alert.ID))
	}
	return ts, nil
}

func severityEmoji(s types.CrisisSeverity) string {
	switch s {
	case types.CrisisSeverityCritical:
		return ":red_circle:"
	case types.CrisisSeverityHigh:
		return ":large_orange_circle:"
	case types.CrisisSeverityMedium:
		return ":large_yellow_circle:"
	default:
		return ":large_blue_circle:"
	}
}

func buildAlertBlocks(alert *model.CrisisAlert) []slack.Block {
	header := slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType,
		truncateToMaxBytes(fmt.Sprintf("%s %s", severityEmoji(alert.Severity), alert.Title), 150), true, false))

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, "*Severity*\n"+string(alert.Severity), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, "*Region*\n"+alert.Region, false, false),
		slack.NewTextBlockObject(slack.MarkdownType, "*Type*\n"+alert.Type, false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Escalation risk*\n%.0f%%", alert.EscalationRisk), false, false),
	}
	summary := slack.NewSectionBlock(nil, fields, nil)

	blocks := []slack.Block{header, summary}
	if alert.Description != "" {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, truncateToMaxBytes(alert.Description, maxSectionBytes), false, false),
			nil, nil))
	}
	if len(alert.Sources) > 0 {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, "Sources: "+strings.Join(alert.Sources, ", "), false, false)))
	}
	return blocks
}

// truncateToMaxBytes cuts s to at most n bytes without splitting a rune
func truncateToMaxBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
