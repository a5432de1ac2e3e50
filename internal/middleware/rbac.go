package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/andesedu/eventos-api/internal/models"
	appErrors "github.com/andesedu/eventos-api/pkg/errors"
	"github.com/andesedu/eventos-api/pkg/response"
)

// RequireRoles enforces that the authenticated caller holds one of the
// allowed roles. The check is an enforcement point only; which role a query
// demands is declared at route registration.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := claimsValue.(*models.JWTClaims)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, ok := allowed[claims.Role]; ok {
			c.Next()
			return
		}

		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
	}
}
