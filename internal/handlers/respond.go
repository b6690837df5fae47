package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/salon/internal/httperr"
	"github.com/joshua-takyi/salon/internal/models"
)

// respondError records err for the error middleware and writes the client
// facing envelope. Internal details never reach the body.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(httperr.StatusOf(err), models.ErrorResponse(httperr.Message(err)))
}

func respond(c *gin.Context, status int, message string, data gin.H) {
	c.JSON(status, models.SuccessResponse(message, data))
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, httperr.Validation("Invalid request body"))
		return false
	}
	return true
}
