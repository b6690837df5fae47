package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/joshua-takyi/salon/internal/helpers"
	"github.com/joshua-takyi/salon/internal/httperr"
	"github.com/joshua-takyi/salon/internal/models"
)

type ImageHost interface {
	Upload(ctx context.Context, source, folder string) (url, publicID string, err error)
	Destroy(ctx context.Context, publicID string) error
}

type GalleryService struct {
	repo   models.GalleryRepo
	host   ImageHost
	logger *slog.Logger
}

// NewGalleryService accepts a nil host; uploads then fail as unavailable.
func NewGalleryService(repo models.GalleryRepo, host ImageHost, logger *slog.Logger) *GalleryService {
	return &GalleryService{
		repo:   repo,
		host:   host,
		logger: logger,
	}
}

func (gs *GalleryService) ListImages(ctx context.Context) ([]*models.GalleryImage, error) {
	images, err := gs.repo.ListImages(ctx)
	if err != nil {
		return nil, storeErr(err, "Image not found")
	}
	return images, nil
}

func (gs *GalleryService) AddImage(ctx context.Context, req models.GalleryUpload) (*models.GalleryImage, error) {
	req.Source = strings.TrimSpace(req.Source)
	req.Caption = strings.TrimSpace(req.Caption)
	if err := models.Validate.Struct(req); err != nil {
		return nil, validationErr(err)
	}
	if gs.host == nil {
		return nil, httperr.Unavailable("Image hosting is not configured", nil)
	}

	url, publicID, err := gs.host.Upload(ctx, req.Source, helpers.GalleryFolder)
	if err != nil {
		return nil, httperr.Unavailable("Failed to upload image", err)
	}

	image, err := gs.repo.CreateImage(ctx, &models.GalleryImage{URL: url, PublicID: publicID, Caption: req.Caption})
	if err != nil {
		return nil, storeErr(err, "Image not found")
	}
	return image, nil
}

func (gs *GalleryService) DeleteImage(ctx context.Context, id string) error {
	image, err := gs.repo.DeleteImage(ctx, id)
	if err != nil {
		return storeErr(err, "Image not found")
	}
	if gs.host != nil {
		if err := gs.host.Destroy(ctx, image.PublicID); err != nil {
			gs.logger.WarnContext(ctx, "hosted image left behind",
				slog.String("public_id", image.PublicID),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}
