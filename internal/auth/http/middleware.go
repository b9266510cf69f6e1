package http

import (
	"context"
	"net/http"

	"github.com/artpromedia/oru/internal/auth/domain"
	"github.com/artpromedia/oru/internal/auth/service"
	"github.com/artpromedia/oru/pkg/httpx"
	"github.com/artpromedia/oru/pkg/slogx"
)

type ctxKey int

const ctxKeySession ctxKey = iota

// SessionFromContext returns the session injected by AuthnMiddleware.
func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	s, ok := ctx.Value(ctxKeySession).(domain.Session)
	return s, ok
}

// AuthnMiddleware validates the bearer token on every request, slides the
// session's expiry and injects the refreshed session into the context.
func AuthnMiddleware(validator *service.ValidatorService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			sess, err := validator.Validate(ctx, r.Header.Get("Authorization"))
			if err != nil {
				apiErr := apiError(err)
				if apiErr == errServerError {
					log.Error("request validation failed", "err", err)
				} else {
					log.Warn("request rejected", "reason", apiErr.Code)
				}
				apiErr.WriteError(w)
				return
			}

			ctx = context.WithValue(ctx, ctxKeySession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
