package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports liveness.
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
