package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/andesedu/eventos-api/pkg/database"
	appErrors "github.com/andesedu/eventos-api/pkg/errors"
	"github.com/andesedu/eventos-api/pkg/response"
)

// InstanceHeader selects the per-campus database target for a request.
const InstanceHeader = "X-Instancia"

// Instance resolves the requested database instance and records it on the
// request context. An absent header falls through to the default instance;
// an unknown one is rejected before any query runs.
func Instance(registry *database.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.GetHeader(InstanceHeader)
		if name == "" {
			c.Next()
			return
		}
		if !registry.Has(name) {
			response.Error(c, appErrors.Clone(appErrors.ErrUnknownInstance, "unknown instance: "+name))
			c.Abort()
			return
		}
		ctx := database.WithInstance(c.Request.Context(), name)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
