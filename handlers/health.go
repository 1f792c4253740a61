package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spacebook/utils"
)

// HealthHandler reports the latest stored health snapshot.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Mongo {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
