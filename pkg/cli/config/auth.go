package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/usecase"
	"github.com/gametheory-pro/gtpro/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Auth holds the bearer token verification settings
type Auth struct {
	jwtSecret string `masq:"secret"`
	audience  string
	skew      time.Duration
	noAuthUID string
}

func (x *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jwt-secret",
			Usage:       "HS256 secret verifying bearer tokens",
			Category:    "Authentication",
			Sources:     cli.EnvVars("GTPRO_JWT_SECRET"),
			Destination: &x.jwtSecret,
		},
		&cli.StringFlag{
			Name:        "jwt-audience",
			Usage:       "Required audience claim of bearer tokens",
			Category:    "Authentication",
			Value:       "authenticated",
			Sources:     cli.EnvVars("GTPRO_JWT_AUDIENCE"),
			Destination: &x.audience,
		},
		&cli.DurationFlag{
			Name:        "jwt-skew",
			Usage:       "Accepted clock skew when validating token times",
			Category:    "Authentication",
			Value:       10 * time.Second,
			Sources:     cli.EnvVars("GTPRO_JWT_SKEW"),
			Destination: &x.skew,
		},
		&cli.StringFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication and run as specified user ID (development only)",
			Category:    "Authentication",
			Sources:     cli.EnvVars("GTPRO_NO_AUTH"),
			Destination: &x.noAuthUID,
		},
	}
}

func (x Auth) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("jwt-secret.len", len(x.jwtSecret)),
		slog.String("audience", x.audience),
		slog.String("no-auth", x.noAuthUID),
	)
}

// IsNoAuthMode reports whether authentication is skipped
func (x *Auth) IsNoAuthMode() bool {
	return x.noAuthUID != ""
}

// Configure returns the authenticator. No-auth takes precedence over the JWT
// secret; with neither, every request is rejected.
func (x *Auth) Configure(ctx context.Context) usecase.Authenticator {
	logger := logging.From(ctx)

	if x.IsNoAuthMode() {
		if x.jwtSecret != "" {
			logger.Warn("Both --no-auth and --jwt-secret are set, using no-auth mode")
		}
		logger.Warn("Running in no-auth mode (development only)", "user_id", x.noAuthUID)
		return usecase.NewNoAuthn(x.noAuthUID, x.noAuthUID+"@localhost", x.noAuthUID)
	}

	if x.jwtSecret == "" {
		logger.Warn("JWT secret is not configured, authenticated endpoints will reject every request")
		return nil
	}

	var opts []usecase.JWTOption
	if x.audience != "" {
		opts = append(opts, usecase.WithAudience(x.audience))
	}
	if x.skew > 0 {
		opts = append(opts, usecase.WithAcceptableSkew(x.skew))
	}
	return usecase.NewJWTAuth(x.jwtSecret, opts...)
}
