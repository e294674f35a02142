// Package auth implements the access gate applied to protected routes:
// bearer token authentication and static role-set authorization. Both checks
// are pure functions of the token and the route's declared roles; no
// database lookup happens per request.
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/authgate/authgate/internal/db/models"
	"github.com/authgate/authgate/internal/token"
)

// ClaimsKey is the fiber locals key carrying the verified session claims.
const ClaimsKey = "session_claims"

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)

	scheme, rest, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(rest)
}

// New creates the authentication middleware. It verifies the bearer token
// with the shared secret and attaches the resolved claims to the request
// context. Missing, invalid or expired tokens are rejected with 401.
func New(codec *token.Codec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "invalid or missing authorization header",
			})
		}

		claims, err := codec.Verify(raw)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "invalid or missing authorization header",
			})
		}

		c.Locals(ClaimsKey, claims)

		return c.Next()
	}
}

// RequireRoles creates the authorization middleware for a route's statically
// declared allowed-role set. It must run after New.
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := ClaimsFrom(c)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "invalid or missing authorization header",
			})
		}

		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}

		log.Warn().Uint64("user_id", claims.UserID).Str("role", string(claims.Role)).
			Str("path", c.Path()).Msg("user lacks required role")

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "you do not have access to this resource",
		})
	}
}

// ClaimsFrom returns the verified claims attached by New, or nil.
func ClaimsFrom(c *fiber.Ctx) *token.Claims {
	claims, _ := c.Locals(ClaimsKey).(*token.Claims)
	return claims
}

// Privileged independently verifies any bearer token on the request and
// reports whether it proves an admin. Absent or invalid tokens make the
// caller unprivileged, never an error; routes with public, field-masked
// responses use this instead of the full gate.
func Privileged(c *fiber.Ctx, codec *token.Codec) bool {
	raw := bearerToken(c)
	if raw == "" {
		return false
	}

	claims, err := codec.Verify(raw)
	if err != nil {
		return false
	}

	return claims.Role == models.RoleAdmin
}
