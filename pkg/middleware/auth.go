package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/schedease/pkg/handlers"
	"github.com/JaimeStill/schedease/pkg/identity"
)

// Authenticate returns middleware that requires a verified bearer token. A
// missing or rejected credential ends the request with 401 before next runs;
// otherwise the principal is stored on the request context.
func Authenticate(verifier identity.Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("middleware", "auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := identity.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				handlers.RespondTextError(w, logger, http.StatusUnauthorized, err, "Unauthorized")
				return
			}

			principal, err := verifier.Verify(r.Context(), token)
			if err != nil {
				if !errors.Is(err, identity.ErrInvalidToken) && !errors.Is(err, identity.ErrMissingToken) {
					err = errors.Join(identity.ErrInvalidToken, err)
				}
				handlers.RespondTextError(w, logger, http.StatusUnauthorized, err, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r.WithContext(identity.WithPrincipal(r.Context(), principal)))
		})
	}
}
