package utils

import (
	"github.com/gin-gonic/gin"
)

// Envelope wraps every response body the API sends.
type Envelope struct {
	Error  bool        `json:"error"`
	Status int         `json:"status"`
	Data   interface{} `json:"data"`
}

func Respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Error: false, Status: status, Data: data})
}

func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Error: true, Status: status, Data: gin.H{"message": message}})
}

// AbortWithError writes an error envelope and stops the handler chain.
func AbortWithError(c *gin.Context, status int, message string) {
	c.Abort()
	RespondError(c, status, message)
}
