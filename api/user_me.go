package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storeit/middleware"
)

// UserMe returns the current user, or null when the session cookie is
// absent or doesn't resolve. Null is data here, not an error: it's the
// signal the frontend's layout gate branches on.
func (a *API) UserMe(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	secret, _ := c.Cookie(a.Cfg.CookieName)

	user, err := middleware.ResolveUser(c.Request.Context(), a.Cfg, secret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to resolve current user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}
