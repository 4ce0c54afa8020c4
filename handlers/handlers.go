package handlers

import (
	"net/http"

	"storefront-api/apperror"
	"storefront-api/middleware"
	"storefront-api/models"
	"storefront-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentPrincipal fetches the caller resolved by middleware.AuthMiddleware and
// writes a 401 envelope when it is missing.
func currentPrincipal(c *gin.Context) (models.Principal, bool) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
	}
	return principal, ok
}

// bindJSON binds the request body and reports binding problems as 422.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.Error(apperror.Unprocessable(utils.SanitizeValidationError(err)).WithCause(err))
		return false
	}
	return true
}

func pathUUID(c *gin.Context, name, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.Error(apperror.Unprocessable(message).WithCause(err))
		return uuid.Nil, false
	}
	return id, true
}

// optionalUUID parses an id that binding already validated. Empty stays uuid.Nil.
func optionalUUID(raw string) uuid.UUID {
	id, _ := uuid.Parse(raw)
	return id
}
