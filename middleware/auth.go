package middleware

import (
	"net/http"
	"strings"

	"spacebook/utils"

	"github.com/gin-gonic/gin"
)

// ContextUserID is the gin context key carrying the authenticated user id.
const ContextUserID = "userID"

// JWTAuthMiddleware validates the bearer token and puts the acting user
// id on the context. Token issuance lives with the external auth
// service; the booking core only consumes the identity.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// AuthenticatedUserID reads the user id set by JWTAuthMiddleware.
func AuthenticatedUserID(c *gin.Context) (string, bool) {
	val, exists := c.Get(ContextUserID)
	if !exists {
		return "", false
	}
	userID, ok := val.(string)
	return userID, ok && userID != ""
}
