package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stunite/backend/internal/delivery/http/middleware"
	"github.com/stunite/backend/internal/domain"
	"github.com/stunite/backend/internal/usecase/profile"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

// Show dispatches GET /profile/*page to either the profile view
// (/profile/{username}) or the edit page (/profile/edit/{username}). The two
// shapes share a wildcard because they differ in the same path segment.
func (h *ProfileHandler) Show(c *gin.Context) {
	page := strings.Trim(c.Param("page"), "/")
	if username, ok := strings.CutPrefix(page, "edit/"); ok {
		h.getEditProfile(c, username)
		return
	}
	h.getProfile(c, page)
}

// Save handles POST /profile/edit/{username}.
func (h *ProfileHandler) Save(c *gin.Context) {
	page := strings.Trim(c.Param("page"), "/")
	username, ok := strings.CutPrefix(page, "edit/")
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
		return
	}
	h.updateProfile(c, username)
}

// getProfile renders the profile page; likers are included only for the
// owner.
func (h *ProfileHandler) getProfile(c *gin.Context, username string) {
	if username == "" {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
		return
	}
	sessionID := c.GetString(middleware.ContextKeyUniqueID)

	view, err := h.profileUseCase.GetByUsername(c.Request.Context(), sessionID, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// getEditProfile answers an ownership mismatch exactly like an unknown
// profile, so record existence never leaks.
func (h *ProfileHandler) getEditProfile(c *gin.Context, username string) {
	sessionID := c.GetString(middleware.ContextKeyUniqueID)

	user, err := h.profileUseCase.GetEditable(c.Request.Context(), sessionID, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) updateProfile(c *gin.Context, username string) {
	sessionID := c.GetString(middleware.ContextKeyUniqueID)

	var req profile.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.profileUseCase.Update(c.Request.Context(), sessionID, username, &req)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}
