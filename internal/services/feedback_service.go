package services

import (
	"context"

	"github.com/joshua-takyi/salon/internal/models"
)

type ContactNotifier interface {
	ContactReceived(f *models.Feedback)
}

type FeedbackService struct {
	repo     models.FeedbackRepo
	notifier ContactNotifier
}

func NewFeedbackService(repo models.FeedbackRepo, notifier ContactNotifier) *FeedbackService {
	return &FeedbackService{
		repo:     repo,
		notifier: notifier,
	}
}

func (fs *FeedbackService) SubmitFeedback(ctx context.Context, feedback *models.Feedback) (*models.Feedback, error) {
	feedback.Normalize()
	if err := models.Validate.Struct(feedback); err != nil {
		return nil, validationErr(err)
	}

	created, err := fs.repo.CreateFeedback(ctx, feedback)
	if err != nil {
		return nil, storeErr(err, "Feedback not found")
	}
	fs.notifier.ContactReceived(created)
	return created, nil
}

func (fs *FeedbackService) ListFeedback(ctx context.Context) ([]*models.Feedback, error) {
	items, err := fs.repo.ListFeedback(ctx)
	if err != nil {
		return nil, storeErr(err, "Feedback not found")
	}
	return items, nil
}

func (fs *FeedbackService) DeleteFeedback(ctx context.Context, id string) error {
	return storeErr(fs.repo.DeleteFeedback(ctx, id), "Feedback not found")
}
