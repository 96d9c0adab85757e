package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sagarsaathi/saathi/internal/pkg/constants"
	"github.com/sagarsaathi/saathi/internal/pkg/models"
	"github.com/sagarsaathi/saathi/internal/utils"
)

// Authenticator resolves a bearer token to an identity
type Authenticator interface {
	Authenticate(token string) (*models.Identity, error)
}

// BearerToken extracts the token from "Authorization: Bearer <token>"
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// JWTAuthMiddleware authenticates the Authorization header and stores the identity on the context
func JWTAuthMiddleware(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			token, ok := BearerToken(authHeader)
			if !ok {
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			}

			identity, err := auth.Authenticate(token)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token")
			}

			c.Set(constants.ContextKeyIdentity, *identity)
			c.Set(constants.ContextKeyUserID, identity.SubjectID)
			c.Set(constants.ContextKeyRole, string(identity.Role))
			SetUserID(c, identity.SubjectID)

			return next(c)
		}
	}
}

// RequireRoles rejects callers whose role is not listed
func RequireRoles(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return utils.UnauthorizedResponse(c, "")
			}
			for _, r := range roles {
				if identity.Role == r {
					return next(c)
				}
			}
			return utils.ForbiddenResponse(c, "role not permitted")
		}
	}
}

// IdentityFrom returns the identity stored by JWTAuthMiddleware
func IdentityFrom(c echo.Context) (models.Identity, bool) {
	identity, ok := c.Get(constants.ContextKeyIdentity).(models.Identity)
	return identity, ok
}
