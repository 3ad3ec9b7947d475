// Package handler provides the HTTP handlers for the profile feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace_backend/internal/feature/auth/domain"
	"marketplace_backend/internal/feature/auth/domain/entity"
	"marketplace_backend/internal/feature/auth/transport/http/dto"
	"marketplace_backend/internal/feature/profile/usecase"
	jwtmw "marketplace_backend/internal/platform/jwt"
)

// ProfileUsecase defines the usecase operations for profile management.
// Following Go convention: interfaces are defined by the consumer
// (handler), not the provider (usecase).
type ProfileUsecase interface {
	// Update applies a partial field set to the user's profile.
	Update(ctx context.Context, id uint, in usecase.UpdateInput) (*entity.User, error)
}

// ProfileHandler handles HTTP requests for the profile endpoints. Both
// endpoints sit behind the auth middleware, which resolves the bearer
// token to a user and attaches it to the gin context.
type ProfileHandler struct {
	profile ProfileUsecase
}

// NewProfileHandler creates a new ProfileHandler instance.
func NewProfileHandler(profile ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profile: profile}
}

// Get handles GET /profile. It returns the user already resolved by the
// auth middleware; the password hash is stripped before the user reaches
// the context, so no store call is needed here.
func (h *ProfileHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "Server error"})
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResponse{User: user})
}

// Update handles PUT /profile. Absent fields are dropped before applying;
// the password cannot be changed through this endpoint.
func (h *ProfileHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "Server error"})
		return
	}

	var req dto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("profile update validation failed", "error", err, "user_id", user.ID, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "invalid request"})
		return
	}

	in := usecase.UpdateInput{
		Name:        req.Name,
		Email:       req.Email,
		DOB:         req.DOB,
		Gender:      req.Gender,
		PhoneNumber: req.PhoneNumber,
		Description: req.Description,
	}
	updated, err := h.profile.Update(c.Request.Context(), user.ID, in)
	if err != nil {
		slog.Warn("profile update failed", "error", err, "user_id", user.ID)
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "User already exists with that email"})
		case errors.Is(err, domain.ErrUserNotFound):
			// Account deleted after token issuance; tokens are not
			// proactively invalidated.
			c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "Unauthorized: User not found"})
		default:
			c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{User: updated, Message: "Profile updated successfully"})
}

// currentUser reads the user the auth middleware attached to the context.
func currentUser(c *gin.Context) (*entity.User, bool) {
	v, exists := c.Get(jwtmw.ContextUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok
}
