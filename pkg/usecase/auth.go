package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
)

// Authenticator resolves a bearer token to the calling user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.AuthUser, error)
	// IsNoAuthn reports whether every request is treated as a fixed user
	IsNoAuthn() bool
}

// JWTAuth verifies HS256 access tokens signed with the project secret
type JWTAuth struct {
	secret   []byte
	audience string
	skew     time.Duration
}

type JWTOption func(*JWTAuth)

// WithAudience requires the aud claim to contain aud
func WithAudience(aud string) JWTOption {
	return func(a *JWTAuth) {
		a.audience = aud
	}
}

// WithAcceptableSkew sets the allowed clock skew for exp/nbf/iat
func WithAcceptableSkew(d time.Duration) JWTOption {
	return func(a *JWTAuth) {
		a.skew = d
	}
}

func NewJWTAuth(secret string, opts ...JWTOption) *JWTAuth {
	a := &JWTAuth{
		secret: []byte(secret),
		skew:   10 * time.Second,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *JWTAuth) Authenticate(ctx context.Context, token string) (*model.AuthUser, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return nil, goerr.Wrap(ErrUnauthorized, "missing bearer token")
	}

	parseOpts := []jwt.ParseOption{
		jwt.WithKey(jwa.HS256, a.secret),
		jwt.WithValidate(true),
		jwt.WithAcceptableSkew(a.skew),
	}
	if a.audience != "" {
		parseOpts = append(parseOpts, jwt.WithAudience(a.audience))
	}

	parsed, err := jwt.Parse([]byte(token), parseOpts...)
	if err != nil {
		return nil, goerr.Wrap(ErrUnauthorized, "failed to verify token", goerr.V("cause", err.Error()))
	}

	sub := parsed.Subject()
	if sub == "" {
		return nil, goerr.Wrap(ErrUnauthorized, "sub claim not found in token")
	}

	user := &model.AuthUser{ID: sub}
	if v, ok := parsed.Get("email"); ok {
		user.Email, _ = v.(string)
	}
	if v, ok := parsed.Get("user_metadata"); ok {
		if meta, ok := v.(map[string]any); ok {
			user.Name, _ = meta["full_name"].(string)
		}
	}
	return user, nil
}

func (a *JWTAuth) IsNoAuthn() bool {
	return false
}

// NoAuthn treats every request as the configured user (for development)
type NoAuthn struct {
	user model.AuthUser
}

func NewNoAuthn(id, email, name string) *NoAuthn {
	return &NoAuthn{user: model.AuthUser{ID: id, Email: email, Name: name}}
}

func (n *NoAuthn) Authenticate(ctx context.Context, token string) (*model.AuthUser, error) {
	user := n.user
	return &user, nil
}

func (n *NoAuthn) IsNoAuthn() bool {
	return true
}

// denyAll rejects every token. It is the default when no authenticator is
// configured.
type denyAll struct{}

func (denyAll) Authenticate(ctx context.Context, token string) (*model.AuthUser, error) {
	return nil, goerr.Wrap(ErrUnauthorized, "authentication is not configured")
}

func (denyAll) IsNoAuthn() bool {
	return false
}
