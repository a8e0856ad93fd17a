package slack

import (
	"context"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
)

// Service posts crisis notifications to a Slack channel
type Service interface {
	// PostCrisisAlert posts alert as a Block Kit message and returns the
	// message timestamp
	PostCrisisAlert(ctx context.Context, alert *model.CrisisAlert) (string, error)
}
