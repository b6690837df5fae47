package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

func Health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := "connected"
		if err := db.Ping(ctx); err != nil {
			status = "disconnected"
		}
		respond(c, http.StatusOK, "", gin.H{
			"status":    "up",
			"db":        status,
			"timestamp": time.Now().UTC(),
		})
	}
}
