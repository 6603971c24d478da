package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stunite/backend/internal/delivery/http/middleware"
	"github.com/stunite/backend/internal/domain"
	"github.com/stunite/backend/internal/usecase/like"
)

type LikeHandler struct {
	likeUseCase *like.LikeUseCase
}

func NewLikeHandler(likeUseCase *like.LikeUseCase) *LikeHandler {
	return &LikeHandler{
		likeUseCase: likeUseCase,
	}
}

type ToggleLikeRequest struct {
	Username string `json:"username" binding:"required"`
}

// ToggleLike handles POST /api/like
// @Summary Toggle a like
// @Description Adds or removes the caller from the target's likers
// @Tags like
// @Accept json
// @Produce json
// @Param request body ToggleLikeRequest true "Target username"
// @Success 200 {object} like.ToggleResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/like [post]
func (h *LikeHandler) ToggleLike(c *gin.Context) {
	uniqueID := c.GetString(middleware.ContextKeyUniqueID)

	var req ToggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username is required"})
		return
	}

	result, err := h.likeUseCase.ToggleLike(c.Request.Context(), uniqueID, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
		case errors.Is(err, domain.ErrSelfLike):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "cannot like your own profile"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to toggle like"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
