package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/joshua-takyi/salon/internal/httperr"
	"github.com/joshua-takyi/salon/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type memoryFeedback struct {
	mu    sync.Mutex
	items []*models.Feedback
}

func (m *memoryFeedback) CreateFeedback(ctx context.Context, f *models.Feedback) (*models.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f.ID = primitive.NewObjectID()
	f.CreatedAt = time.Now()
	m.items = append([]*models.Feedback{f}, m.items...)
	return f, nil
}

func (m *memoryFeedback) ListFeedback(ctx context.Context) ([]*models.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Feedback{}, m.items...), nil
}

func (m *memoryFeedback) DeleteFeedback(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, f := range m.items {
		if f.ID.Hex() == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func TestFeedbackService(t *testing.T) {
	repo := &memoryFeedback{}
	notifier := &recordingNotifier{}
	fs := NewFeedbackService(repo, notifier)
	ctx := context.Background()

	f, err := fs.SubmitFeedback(ctx, &models.Feedback{Name: " Ravi ", Email: "RAVI@mail.in", Message: "Loved it"})
	require.NoError(t, err)
	assert.Equal(t, "Ravi", f.Name)
	assert.Equal(t, "ravi@mail.in", f.Email)
	assert.Len(t, notifier.contacts, 1)

	_, err = fs.SubmitFeedback(ctx, &models.Feedback{Name: "Ravi", Email: "ravi@mail.in", Message: strings.Repeat("x", 1001)})
	assert.True(t, httperr.Is(err, httperr.KindValidation))

	items, err := fs.ListFeedback(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, fs.DeleteFeedback(ctx, items[0].ID.Hex()))
	assert.True(t, httperr.Is(fs.DeleteFeedback(ctx, items[0].ID.Hex()), httperr.KindNotFound))
}

type memoryAdmins struct {
	admins []*models.AdminUser
	err    error
	// staleCount makes CountAdmins report zero, as a concurrent run would see.
	staleCount bool
}

func (m *memoryAdmins) CreateAdmin(ctx context.Context, a *models.AdminUser) (*models.AdminUser, error) {
	for _, other := range m.admins {
		if (a.First && other.First) || other.Username == a.Username || other.Email == a.Email {
			return nil, models.ErrDuplicate
		}
	}
	a.ID = primitive.NewObjectID()
	m.admins = append(m.admins, a)
	return a, nil
}

func (m *memoryAdmins) FindAdmin(ctx context.Context, identifier string) (*models.AdminUser, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, a := range m.admins {
		if a.Username == identifier || a.Email == strings.ToLower(identifier) {
			return a, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memoryAdmins) CountAdmins(ctx context.Context) (int64, error) {
	if m.staleCount {
		return 0, nil
	}
	return int64(len(m.admins)), nil
}

func TestCreateFirstAdminConcurrentRuns(t *testing.T) {
	repo := &memoryAdmins{staleCount: true}
	as := NewAuthService(repo, "", 0)
	ctx := context.Background()

	first, err := as.CreateFirstAdmin(ctx, "owner", "owner@example.com", "Salon2025")
	require.NoError(t, err)
	assert.True(t, first.First)

	_, err = as.CreateFirstAdmin(ctx, "manager", "manager@example.com", "Salon2025")
	assert.ErrorIs(t, err, ErrAdminExists)
	assert.Len(t, repo.admins, 1)
}

func TestAuthService(t *testing.T) {
	repo := &memoryAdmins{}
	as := NewAuthService(repo, "test-secret", time.Hour)
	ctx := context.Background()

	admin, err := as.CreateFirstAdmin(ctx, "owner", "owner@example.com", "Salon2025")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("Salon2025")))

	_, err = as.CreateFirstAdmin(ctx, "second", "second@example.com", "Salon2025")
	assert.ErrorIs(t, err, ErrAdminExists)

	for _, id := range []string{"owner", "OWNER@example.com"} {
		token, got, err := as.Login(ctx, models.LoginRequest{Identifier: id, Password: "Salon2025"})
		require.NoError(t, err, id)
		assert.Equal(t, admin.ID, got.ID)

		claims, err := as.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, admin.ID.Hex(), claims.AdminID())
	}

	_, _, err = as.Login(ctx, models.LoginRequest{Identifier: "owner", Password: "wrong"})
	assert.True(t, httperr.Is(err, httperr.KindAuth))
	_, _, err = as.Login(ctx, models.LoginRequest{Identifier: "nobody", Password: "Salon2025"})
	assert.True(t, httperr.Is(err, httperr.KindAuth))
	assert.Equal(t, msgBadCredentials, httperr.Message(err))

	_, err = as.VerifyToken("garbage")
	assert.True(t, httperr.Is(err, httperr.KindAuth))

	repo.err = models.ErrUnavailable
	_, _, err = as.Login(ctx, models.LoginRequest{Identifier: "owner", Password: "Salon2025"})
	assert.True(t, httperr.Is(err, httperr.KindUnavailable))
}

type memoryGallery struct {
	images []*models.GalleryImage
}

func (m *memoryGallery) CreateImage(ctx context.Context, img *models.GalleryImage) (*models.GalleryImage, error) {
	img.ID = primitive.NewObjectID()
	m.images = append(m.images, img)
	return img, nil
}

func (m *memoryGallery) ListImages(ctx context.Context) ([]*models.GalleryImage, error) {
	return m.images, nil
}

func (m *memoryGallery) DeleteImage(ctx context.Context, id string) (*models.GalleryImage, error) {
	for i, img := range m.images {
		if img.ID.Hex() == id {
			m.images = append(m.images[:i], m.images[i+1:]...)
			return img, nil
		}
	}
	return nil, models.ErrNotFound
}

type fakeHost struct {
	uploaded  []string
	destroyed []string
	err       error
}

func (f *fakeHost) Upload(ctx context.Context, source, folder string) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	f.uploaded = append(f.uploaded, source)
	return "https://cdn.example.com/" + folder + "/1.jpg", folder + "/1", nil
}

func (f *fakeHost) Destroy(ctx context.Context, publicID string) error {
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

func TestGalleryService(t *testing.T) {
	repo := &memoryGallery{}
	host := &fakeHost{}
	gs := NewGalleryService(repo, host, quietLogger())
	ctx := context.Background()

	img, err := gs.AddImage(ctx, models.GalleryUpload{Source: "https://example.com/cut.jpg", Caption: "Fade"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/gallery/1.jpg", img.URL)

	_, err = gs.AddImage(ctx, models.GalleryUpload{Source: "  "})
	assert.True(t, httperr.Is(err, httperr.KindValidation))

	require.NoError(t, gs.DeleteImage(ctx, img.ID.Hex()))
	assert.Equal(t, []string{"gallery/1"}, host.destroyed)
	assert.True(t, httperr.Is(gs.DeleteImage(ctx, img.ID.Hex()), httperr.KindNotFound))

	host.err = errors.New("quota")
	_, err = gs.AddImage(ctx, models.GalleryUpload{Source: "https://example.com/cut.jpg"})
	assert.True(t, httperr.Is(err, httperr.KindUnavailable))

	unhosted := NewGalleryService(repo, nil, quietLogger())
	_, err = unhosted.AddImage(ctx, models.GalleryUpload{Source: "https://example.com/cut.jpg"})
	assert.True(t, httperr.Is(err, httperr.KindUnavailable))
}
