package handlers

import (
	"net/http"

	"storefront-api/services"
	"storefront-api/utils"

	"github.com/gin-gonic/gin"
)

type UtilsHandler struct {
	Seeder *services.Seeder
}

// Seed runs the seed command and returns its output untouched.
func (h *UtilsHandler) Seed(c *gin.Context) {
	out, err := h.Seeder.Run(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	utils.Respond(c, http.StatusOK, gin.H{"result": out})
}

func Health(c *gin.Context) {
	utils.Respond(c, http.StatusOK, gin.H{"status": "ok"})
}
