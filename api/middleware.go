package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Domenick1991/flightmate/internal/observability"
	"github.com/Domenick1991/flightmate/internal/service/auth"
	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// AuthRequired extracts the bearer principal before any booking handler
// runs. Absent or invalid tokens never reach the services.
func AuthRequired(service auth.AuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		userID, err := service.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) int64 {
	id, _ := c.Get(userIDKey)
	userID, _ := id.(int64)
	return userID
}

// RequestMetrics counts finished requests by route, method and status.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observability.RequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status()), c.Request.Method).Inc()
	}
}
