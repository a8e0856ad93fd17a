package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/repository/memory"
	"github.com/gametheory-pro/gtpro/pkg/usecase"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/gt"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func signToken(t *testing.T, secret string, build func(b *jwt.Builder) *jwt.Builder) string {
	t.Helper()
	b := jwt.NewBuilder().
		Subject("user-1").
		Audience([]string{"authenticated"}).
		IssuedAt(time.Now()).
		Expiration(time.Now().Add(time.Hour)).
		Claim("email", "analyst@example.com")
	if build != nil {
		b = build(b)
	}
	tok, err := b.Build()
	gt.NoError(t, err).Required()
	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, []byte(secret)))
	gt.NoError(t, err).Required()
	return string(signed)
}

func TestJWTAuth_Authenticate(t *testing.T) {
	ctx := context.Background()
	auth := usecase.NewJWTAuth(testSecret, usecase.WithAudience("authenticated"))

	t.Run("valid token", func(t *testing.T) {
		user, err := auth.Authenticate(ctx, "Bearer "+signToken(t, testSecret, nil))
		gt.NoError(t, err).Required()
		gt.Value(t, user.ID).Equal("user-1")
		gt.Value(t, user.Email).Equal("analyst@example.com")
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := auth.Authenticate(ctx, signToken(t, "another-secret-another-secret-another", nil))
		gt.Error(t, err).Is(usecase.ErrUnauthorized)
	})

	t.Run("expired", func(t *testing.T) {
		token := signToken(t, testSecret, func(b *jwt.Builder) *jwt.Builder {
			return b.Expiration(time.Now().Add(-time.Hour))
		})
		_, err := auth.Authenticate(ctx, token)
		gt.Error(t, err).Is(usecase.ErrUnauthorized)
	})

	t.Run("wrong audience", func(t *testing.T) {
		token := signToken(t, testSecret, func(b *jwt.Builder) *jwt.Builder {
			return b.Audience([]string{"anon"})
		})
		_, err := auth.Authenticate(ctx, token)
		gt.Error(t, err).Is(usecase.ErrUnauthorized)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := auth.Authenticate(ctx, "Bearer ")
		gt.Error(t, err).Is(usecase.ErrUnauthorized)
	})
}

func TestNoAuthn(t *testing.T) {
	auth := usecase.NewNoAuthn("dev-user", "dev@example.com", "Developer")
	user, err := auth.Authenticate(context.Background(), "")
	gt.NoError(t, err).Required()
	gt.Value(t, user.ID).Equal("dev-user")
	gt.Bool(t, auth.IsNoAuthn()).True()
}

func TestDefaultAuthDeniesEverything(t *testing.T) {
	uc := usecase.New(memory.New())
	_, err := uc.Auth.Authenticate(context.Background(), "anything")
	gt.Error(t, err).Is(usecase.ErrUnauthorized)
}
