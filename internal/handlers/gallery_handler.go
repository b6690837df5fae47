package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/salon/internal/models"
)

type GalleryAPI interface {
	ListImages(ctx context.Context) ([]*models.GalleryImage, error)
	AddImage(ctx context.Context, req models.GalleryUpload) (*models.GalleryImage, error)
	DeleteImage(ctx context.Context, id string) error
}

func ListGallery(g GalleryAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		images, err := g.ListImages(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", gin.H{"images": images})
	}
}

func AddGalleryImage(g GalleryAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.GalleryUpload
		if !bindJSON(c, &req) {
			return
		}
		image, err := g.AddImage(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusCreated, "Image uploaded successfully", gin.H{"image": image})
	}
}

func DeleteGalleryImage(g GalleryAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := g.DeleteImage(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Image deleted successfully", nil)
	}
}
