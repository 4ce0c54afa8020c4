package middleware

import (
	"net/http"

	"storefront-api/apperror"
	"storefront-api/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ErrorHandler renders the last error a handler attached with c.Error. Errors
// of type *apperror.Error keep their status and message; anything else is
// logged and reported as a bare 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		if appErr, ok := apperror.As(err); ok {
			if appErr.Status >= http.StatusInternalServerError {
				log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
			}
			utils.RespondError(c, appErr.Status, appErr.Message)
			return
		}

		log.WithError(err).WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("unhandled error")
		utils.RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// Recovery turns panics into the same 500 envelope as unhandled errors.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.WithField("panic", recovered).WithField("path", c.Request.URL.Path).Error("recovered from panic")
		utils.AbortWithError(c, http.StatusInternalServerError, "Internal server error")
	})
}
