package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/salon/internal/cleanup"
	"github.com/joshua-takyi/salon/internal/config"
	"github.com/joshua-takyi/salon/internal/helpers"
	"github.com/joshua-takyi/salon/internal/middleware"
	"github.com/joshua-takyi/salon/internal/models"
	"github.com/joshua-takyi/salon/internal/notify"
	"github.com/joshua-takyi/salon/internal/schedule"
	"github.com/joshua-takyi/salon/internal/services"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger *slog.Logger
	Config *config.Config

	MongoDBClient *mongo.Client
	Repo          *models.MongodbRepo
	RateCounter   middleware.Counter
	Dispatcher    *notify.Dispatcher
	Sweeper       *cleanup.Sweeper

	BookingService  *services.BookingService
	FeedbackService *services.FeedbackService
	AuthService     *services.AuthService
	GalleryService  *services.GalleryService
}

// NewContainer wires repositories, notifications and services. rdb and cld
// are optional.
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	mongoDBClient *mongo.Client,
	rdb *redis.Client,
	cld *cloudinary.Cloudinary,
) (*Container, error) {
	repo := models.MongodbNewRepo(mongoDBClient, cfg.MongoDBDatabase)
	hours := cfg.BusinessHours()

	var mailer notify.Mailer = notify.LogMailer{Logger: logger}
	if cfg.SMTPEnabled() {
		mailer = notify.NewSMTPMailer(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			FromName: cfg.MailFromName,
		})
	}
	renderer, err := notify.NewRenderer(cfg.MailFromName, hours.Location)
	if err != nil {
		return nil, fmt.Errorf("load email templates: %w", err)
	}
	dispatcher := notify.NewDispatcher(mailer, logger)
	notifier := notify.NewNotifier(dispatcher, renderer, cfg.OwnerEmail, logger)

	var counter middleware.Counter = middleware.NewMemoryCounter()
	if rdb != nil {
		counter = middleware.NewRedisCounter(rdb)
	}

	var host services.ImageHost
	if cld != nil {
		host = helpers.NewCloudinaryHost(cld)
	}

	return &Container{
		Logger:        logger,
		Config:        cfg,
		MongoDBClient: mongoDBClient,
		Repo:          repo,
		RateCounter:   counter,
		Dispatcher:    dispatcher,
		Sweeper:       cleanup.NewSweeper(repo, cfg.CleanupGrace, logger),
		BookingService: services.NewBookingService(repo, repo, notifier, services.BookingOptions{
			Catalog: schedule.DefaultCatalog(),
			Hours:   hours,
			Rule:    cfg.BookingRule(),
		}, logger),
		FeedbackService: services.NewFeedbackService(repo, notifier),
		AuthService:     services.NewAuthService(repo, cfg.JWTSecret, cfg.TokenTTL),
		GalleryService:  services.NewGalleryService(repo, host, logger),
	}, nil
}

// Close drains queued email.
func (c *Container) Close(ctx context.Context) error {
	return c.Dispatcher.Close(ctx)
}
