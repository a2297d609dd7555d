package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	goIdentity "github.com/MrEthical07/goIdentity"
)

type profileContextKey struct{}

// ProfileFromContext returns the profile injected by a guard, if any.
func ProfileFromContext(ctx context.Context) (*goIdentity.Profile, bool) {
	p, ok := ctx.Value(profileContextKey{}).(*goIdentity.Profile)
	return p, ok
}

// Guard returns middleware that resolves the bearer token and requires an
// active account. Disabled accounts are rejected with 403; everything else
// that fails resolution gets 401.
func Guard(engine *goIdentity.Engine) func(http.Handler) http.Handler {
	return guard(engine, true)
}

// GuardAny returns middleware that resolves the bearer token without the
// active-account gate.
func GuardAny(engine *goIdentity.Engine) func(http.Handler) http.Handler {
	return guard(engine, false)
}

func guard(engine *goIdentity.Engine, requireActive bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			var (
				profile *goIdentity.Profile
				err     error
			)
			if requireActive {
				profile, err = engine.IdentifyActive(r.Context(), token)
			} else {
				profile, err = engine.Identify(r.Context(), token)
			}
			if err != nil {
				if errors.Is(err, goIdentity.ErrForbidden) {
					http.Error(w, "forbidden", http.StatusForbidden)
					return
				}
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), profileContextKey{}, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
