package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type status struct {
	Status string `json:"status"`
}

// Health responds 200 as long as the process is serving requests.
func Health(c *gin.Context) {
	// swagger:route GET /health health
	//
	// Service health
	//
	// responses:
	//   200:
	c.JSON(http.StatusOK, status{Status: "up"})
}
