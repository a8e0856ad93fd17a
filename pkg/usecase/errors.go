package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	ErrUnauthorized = goerr.New("unauthorized")
	ErrForbidden    = goerr.New("access denied")

	ErrScenarioNotFound  = goerr.New("scenario not found")
	ErrWorkspaceNotFound = goerr.New("workspace not found")
	ErrTaskNotFound      = goerr.New("task not found")

	errNoArticles = goerr.New("news provider returned no articles")

	ErrNoSentimentSource = goerr.New("social sentiment provider not configured")
	errNoAssessment      = goerr.New("no stored risk assessment for region")
	errNoMonitoringCycle = goerr.New("no crisis monitoring cycle has completed")
)

// Context keys for error values
const (
	UserIDKey      = "user_id"
	RegionKey      = "region"
	ScenarioIDKey  = "scenario_id"
	WorkspaceIDKey = "workspace_id"
)
