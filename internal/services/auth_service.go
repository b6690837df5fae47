package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joshua-takyi/salon/internal/helpers"
	"github.com/joshua-takyi/salon/internal/httperr"
	"github.com/joshua-takyi/salon/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const msgBadCredentials = "Invalid credentials"

var ErrAdminExists = errors.New("an admin account already exists")

type AuthService struct {
	repo     models.AdminRepo
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(repo models.AdminRepo, secret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:     repo,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// Login checks the password of the admin matching identifier, which may be
// a username or an email, and issues a session token.
func (as *AuthService) Login(ctx context.Context, req models.LoginRequest) (string, *models.AdminUser, error) {
	if err := models.Validate.Struct(req); err != nil {
		return "", nil, httperr.Validation("Username or email and password are required")
	}

	admin, err := as.repo.FindAdmin(ctx, req.Identifier)
	if errors.Is(err, models.ErrNotFound) {
		return "", nil, httperr.Auth(msgBadCredentials)
	}
	if err != nil {
		return "", nil, storeErr(err, msgBadCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return "", nil, httperr.Auth(msgBadCredentials)
	}

	token, err := helpers.IssueToken(as.secret, as.tokenTTL, admin.ID.Hex(), admin.Username, admin.Email)
	if err != nil {
		return "", nil, httperr.Internal("Failed to issue token", err)
	}
	return token, admin, nil
}

func (as *AuthService) VerifyToken(token string) (*helpers.AdminClaims, error) {
	claims, err := helpers.ParseToken(as.secret, token)
	if err != nil {
		return nil, httperr.Auth("Invalid or expired token")
	}
	return claims, nil
}

// CreateFirstAdmin registers the initial admin. It refuses once any admin
// exists. The count is only a fast path: two concurrent runs both see zero,
// and the first_admin_unique index rejects the second insert.
func (as *AuthService) CreateFirstAdmin(ctx context.Context, username, email, password string) (*models.AdminUser, error) {
	n, err := as.repo.CountAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		return nil, ErrAdminExists
	}

	admin := &models.AdminUser{Username: username, Email: email}
	if err := models.Validate.Struct(admin); err != nil {
		return nil, errors.New(models.ValidationMessage(err))
	}
	if !helpers.IsPasswordStrong(password) {
		return nil, errors.New("password must be at least 8 characters with upper, lower case letters and a digit")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	admin.Password = string(hash)
	admin.First = true

	created, err := as.repo.CreateAdmin(ctx, admin)
	if errors.Is(err, models.ErrDuplicate) {
		return nil, ErrAdminExists
	}
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return created, nil
}
