package middleware

import (
	"net/http"
	"strings"

	"storefront-api/models"
	"storefront-api/utils"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// AuthMiddleware resolves the bearer token into a models.Principal. Requests
// without a valid token get a 401 envelope and never reach the handler.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.AbortWithError(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.AbortWithError(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			utils.AbortWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(principalKey, models.Principal{UserID: claims.UserID, Email: claims.Email})
		c.Next()
	}
}

// CurrentPrincipal returns the caller resolved by AuthMiddleware.
func CurrentPrincipal(c *gin.Context) (models.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}
