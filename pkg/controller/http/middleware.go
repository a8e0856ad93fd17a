package http

import (
	"context"
	"net/http"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/usecase"
	"github.com/gametheory-pro/gtpro/pkg/utils/errutil"
	"github.com/gametheory-pro/gtpro/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

type ctxUserKey struct{}

func contextWithUser(ctx context.Context, user *model.AuthUser) context.Context {
	return context.WithValue(ctx, ctxUserKey{}, user)
}

// userFrom returns the caller set by authMiddleware
func userFrom(ctx context.Context) *model.AuthUser {
	user, _ := ctx.Value(ctxUserKey{}).(*model.AuthUser)
	return user
}

// corsMiddleware allows every origin and answers preflight requests directly
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authMiddleware resolves the bearer Authorization header to a user and
// makes sure the user has a profile
func authMiddleware(uc *usecase.UseCases) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			header := r.Header.Get("Authorization")
			if header == "" && !uc.Auth.IsNoAuthn() {
				errutil.WriteError(ctx, w, goerr.New("missing authorization header"), http.StatusUnauthorized)
				return
			}

			user, err := uc.Auth.Authenticate(ctx, header)
			if err != nil {
				logging.From(ctx).Warn("authentication failed", "error", err.Error(), "path", r.URL.Path)
				errutil.WriteError(ctx, w, goerr.New("invalid user token"), http.StatusUnauthorized)
				return
			}

			uc.Persistence.EnsureProfile(ctx, user)

			ctx = contextWithUser(ctx, user)
			ctx = logging.With(ctx, logging.From(ctx).With("user_id", user.ID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
