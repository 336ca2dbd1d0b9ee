package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/errresponse"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/logging"
)

type ctxKey int8

const ctxKeyIdentity ctxKey = iota

// Authenticator lets a request through only with a valid bearer token and
// puts the token's Identity on the context.
func (s *Service) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			Unauthorized(w, r, ErrUnauthorized)
			return
		}

		id, err := s.ParseToken(raw)
		if err != nil {
			Unauthorized(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// Unauthorized writes the 401 challenge.
func Unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context()).Debugw("unauthorized", "error", err)
	w.Header().Set("WWW-Authenticate", "Bearer")
	render.Render(w, r, errresponse.ErrUnauthorized(err)) // nolint
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity).(Identity)
	return id, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}
