package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stunite/backend/internal/delivery/http/middleware"
	"github.com/stunite/backend/internal/usecase/feed"
)

type FeedHandler struct {
	feedUseCase *feed.FeedUseCase
}

func NewFeedHandler(feedUseCase *feed.FeedUseCase) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
	}
}

// Home handles GET /. Anonymous visitors get the landing payload; an active
// session gets the browse feed. The gate guarantees nobody mid-onboarding
// reaches this handler.
// @Summary Landing or feed
// @Tags feed
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router / [get]
func (h *FeedHandler) Home(c *gin.Context) {
	uniqueID := c.GetString(middleware.ContextKeyUniqueID)
	if uniqueID == "" {
		c.JSON(http.StatusOK, gin.H{
			"page":  "landing",
			"title": "Welcome to Stunite!",
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	profiles, err := h.feedUseCase.List(c.Request.Context(), uniqueID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load feed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":     "feed",
		"profiles": profiles,
	})
}
