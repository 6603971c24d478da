package handler

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stunite/backend/internal/infrastructure/storage"
)

const maxAvatarSize = 5 * 1024 * 1024 // 5MB

var allowedAvatarExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type UploadHandler struct {
	uploader storage.Uploader
}

func NewUploadHandler(uploader storage.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

type UploadResponse struct {
	URL string `json:"url"`
}

// UploadAvatar handles POST /api/avatar/upload?filename=...: raw file body
// in, public URL out.
// @Summary Upload an avatar image
// @Tags upload
// @Accept octet-stream
// @Produce json
// @Param filename query string true "Original file name"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/avatar/upload [post]
func (h *UploadHandler) UploadAvatar(c *gin.Context) {
	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "object storage is not configured"})
		return
	}

	filename := c.Query("filename")
	if filename == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "filename query parameter is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedAvatarExts[ext] {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "only jpg/jpeg/png/webp allowed"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxAvatarSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read file body"})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file body is empty"})
		return
	}
	if len(body) > maxAvatarSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file exceeds 5MB limit"})
		return
	}

	// Unique public id so re-uploads never collide.
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	publicID := fmt.Sprintf("%s-%d", base, time.Now().UnixNano())

	url, err := h.uploader.UploadBytes(c.Request.Context(), publicID, body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to upload avatar"})
		return
	}

	c.JSON(http.StatusOK, UploadResponse{URL: url})
}
