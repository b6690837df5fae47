package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/salon/internal/models"
)

type FeedbackAPI interface {
	SubmitFeedback(ctx context.Context, feedback *models.Feedback) (*models.Feedback, error)
	ListFeedback(ctx context.Context) ([]*models.Feedback, error)
	DeleteFeedback(ctx context.Context, id string) error
}

func SubmitFeedback(f FeedbackAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name    string `json:"name"`
			Email   string `json:"email"`
			Message string `json:"message"`
		}
		if !bindJSON(c, &req) {
			return
		}
		_, err := f.SubmitFeedback(c.Request.Context(), &models.Feedback{
			Name:    req.Name,
			Email:   req.Email,
			Message: req.Message,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusCreated, "Feedback submitted successfully", nil)
	}
}

func ListFeedback(f FeedbackAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := f.ListFeedback(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", gin.H{"feedback": items})
	}
}

func DeleteFeedback(f FeedbackAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := f.DeleteFeedback(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Feedback deleted successfully", nil)
	}
}
