// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file resolves the caller's identity. Tokens are verified against the
// external auth provider (internal/identity); on success the user id and
// email are stored in the Gin context for handlers and downstream middleware
// (rate-limit keying, logging).
//
// Two postures:
//   - required=false: verification is best-effort. A missing or rejected
//     token leaves the request anonymous (handlers fall back to the demo
//     header/user); a provider outage never blocks traffic.
//   - required=true: requests without a verifiable token are rejected with
//     401. Provider outages reject with 503 rather than silently admitting.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/creatorkit/go-creator-backend/internal/identity"
)

// Auth returns a Gin middleware that verifies bearer tokens with v. A nil
// verifier disables verification entirely (requests stay anonymous unless
// required, in which case everything is rejected; validated at config load).
func Auth(v identity.Verifier, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)

		if v == nil || token == "" {
			if required {
				unauthorized(c)
				return
			}
			c.Next()
			return
		}

		u, err := v.Verify(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set("userID", u.ID)
			c.Set("userEmail", u.Email)
			// The access logger attached its scoped logger before identity
			// resolution; rebind it so handler logs carry the user.
			scoped := LoggerFrom(c).With().Str("user_id", u.ID).Logger()
			c.Set("logger", &scoped)
		case errors.Is(err, identity.ErrUnauthorized):
			if required {
				unauthorized(c)
				return
			}
			// Anonymous; handlers apply their own fallback.
		default:
			log.Warn().Err(err).Msg("identity provider unavailable")
			if required {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
					"request_id": c.Writer.Header().Get("X-Request-ID"),
					"code":       "auth_unavailable",
					"message":    "identity provider unavailable",
				})
				return
			}
		}
		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header; empty when
// the header is missing or not a Bearer scheme.
func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get("X-Request-ID"),
		"code":       "unauthorized",
		"message":    "a valid bearer token is required",
	})
}
