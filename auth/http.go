package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// CookieName holds the admin token for browser form logins.
const CookieName = "admin_token"

type contextKey string

const claimsKey contextKey = "claims"

// TokenFromRequest reads "Authorization: Bearer <token>" first, then the cookie.
func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Authenticate attaches the claims of a valid token to the request context.
// Requests without a valid token pass through unchanged.
func Authenticate(issuer TokenIssuer, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := issuer.Validate(token)
			if err != nil {
				log.Debug("Rejected token", "path", r.URL.Path, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}
