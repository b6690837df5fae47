package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/salon/internal/cleanup"
	"github.com/joshua-takyi/salon/internal/httperr"
	"github.com/joshua-takyi/salon/internal/middleware"
	"github.com/joshua-takyi/salon/internal/models"
)

type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (string, *models.AdminUser, error)
}

type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

func AdminLogin(a AuthAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if !bindJSON(c, &req) {
			return
		}
		token, admin, err := a.Login(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Login successful", gin.H{
			"token": token,
			"admin": admin,
		})
	}
}

// AdminProfile returns the identity carried by the session token.
func AdminProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.CurrentAdmin(c)
		if !ok {
			respondError(c, httperr.Auth("Unauthorized"))
			return
		}
		respond(c, http.StatusOK, "", gin.H{"admin": gin.H{
			"id":       claims.AdminID(),
			"username": claims.Username,
			"email":    claims.Email,
		}})
	}
}

func RunCleanup(s Sweeper) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := s.Sweep(c.Request.Context())
		if errors.Is(err, cleanup.ErrSweepInProgress) {
			respondError(c, httperr.Conflict("Cleanup is already running"))
			return
		}
		if errors.Is(err, models.ErrUnavailable) {
			respondError(c, httperr.Unavailable("Database is unavailable, please try again later", err))
			return
		}
		if err != nil {
			respondError(c, httperr.Internal("Cleanup failed", err))
			return
		}
		respond(c, http.StatusOK, "Expired bookings removed", gin.H{"deleted": deleted})
	}
}
