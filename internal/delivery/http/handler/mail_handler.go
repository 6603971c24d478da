package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stunite/backend/internal/infrastructure/mail"
)

type MailHandler struct {
	mailClient *mail.Client
}

func NewMailHandler(mailClient *mail.Client) *MailHandler {
	return &MailHandler{mailClient: mailClient}
}

type SendMailRequest struct {
	To          string `json:"to" binding:"required,email"`
	FirstName   string `json:"firstName" binding:"required"`
	LikedBy     string `json:"likedBy" binding:"required"`
	SocialMedia string `json:"social_media" binding:"required"`
	SiteURL     string `json:"SiteURL" binding:"required"`
}

// SendMail handles POST /api/sendMail
// @Summary Send a like notification mail
// @Tags mail
// @Accept json
// @Produce json
// @Param request body SendMailRequest true "Notification fields"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/sendMail [post]
func (h *MailHandler) SendMail(c *gin.Context) {
	var req SendMailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing required parameters"})
		return
	}

	if h.mailClient == nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "mail provider is not configured"})
		return
	}

	id, err := h.mailClient.SendLikeAlert(c.Request.Context(), mail.LikeAlert{
		To:          req.To,
		FirstName:   req.FirstName,
		LikedBy:     req.LikedBy,
		SocialMedia: req.SocialMedia,
		SiteURL:     req.SiteURL,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "error sending email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Email sent successfully!",
		"id":      id,
	})
}
