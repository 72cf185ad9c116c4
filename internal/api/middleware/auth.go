package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dom/product-catalog-api/internal/config"
	"github.com/dom/product-catalog-api/internal/service"
	"github.com/dom/product-catalog-api/internal/token"
)

type contextKey string

const claimsKey contextKey = "authClaims"

// AccessTokenHeader carries a reissued access token back to the client
// when an expired one was refreshed mid-request.
const AccessTokenHeader = "x-access-token"

// Authenticate extracts the bearer token and attaches its claims to the
// request context. An expired access token accompanied by a valid refresh
// token (in the configured header) gets a fresh access token, returned to
// the client via the x-access-token response header. Requests without a
// usable token proceed anonymously; RequireUser gates protected routes.
func Authenticate(authService *service.AuthService, cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bearer := bearerToken(r)
			if bearer == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, result := authService.VerifyAccessToken(bearer)
			switch result {
			case token.Valid:
				next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
				return
			case token.Expired:
				refreshToken := r.Header.Get(cfg.RefreshTokenHeader)
				if refreshToken == "" {
					break
				}
				newAccess, ok := authService.ReissueAccessToken(r.Context(), refreshToken)
				if !ok {
					break
				}
				newClaims, res := authService.VerifyAccessToken(newAccess)
				if res != token.Valid {
					break
				}
				w.Header().Set(AccessTokenHeader, newAccess)
				next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), newClaims)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireUser rejects requests that carry no authenticated claims.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetClaims(r.Context()); !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func withClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaims returns the authenticated claims attached by Authenticate.
func GetClaims(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*token.Claims)
	return claims, ok
}
