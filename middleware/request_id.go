// Package middleware contains any custom middleware used in the app
package middleware

import (
	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NewRequestIDMiddleware returns a middleware that tags each incoming
// request with a short id under the requestID key, echoed back in every
// error response.
func NewRequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := gonanoid.New(10)
		if err != nil {
			// Only possible if the OS entropy source is broken
			id = "unknown"
		}

		c.Set("requestID", id)
		c.Next()
	}
}
