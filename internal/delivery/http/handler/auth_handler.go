package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stunite/backend/internal/domain"
	"github.com/stunite/backend/internal/usecase/auth"
)

type AuthHandler struct {
	authUseCase *auth.AuthUseCase
	cookieName  string
}

func NewAuthHandler(authUseCase *auth.AuthUseCase, cookieName string) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		cookieName:  cookieName,
	}
}

type SignUpRequest struct {
	Email    string `json:"email" binding:"required,eduemail"`
	Password string `json:"password" binding:"required,min=8"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignUp handles POST /sign-up
// @Summary Sign up
// @Description Create an account with an institutional email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignUpRequest true "Credentials"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sign-up [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "please use a valid @stonybrook.edu email address and a password of at least 8 characters",
		})
		return
	}

	_, err := h.authUseCase.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "email already registered"})
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "sign up failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Thanks for signing up! Please check your email for a verification link.",
	})
}

// SignIn handles POST /sign-in and sets the session cookie.
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignInRequest true "Credentials"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sign-in [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	deviceInfo := c.GetHeader("User-Agent")
	ipAddress := c.ClientIP()

	result, err := h.authUseCase.SignIn(c.Request.Context(), req.Email, req.Password, deviceInfo, ipAddress)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "sign in failed"})
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	c.SetCookie(h.cookieName, result.Token, maxAge, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"redirect": "/onboarding",
	})
}

// SignOut handles POST /sign-out: deletes the session and clears the cookie.
// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /sign-out [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	if token, err := c.Cookie(h.cookieName); err == nil && token != "" {
		if err := h.authUseCase.SignOut(c.Request.Context(), token); err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "sign out failed"})
			return
		}
	}

	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"redirect": "/sign-in",
	})
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword handles POST /forgot-password. It answers success whether or
// not the address is registered.
// @Summary Request a password reset
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email is required"})
		return
	}

	if err := h.authUseCase.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not reset password"})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Check your email for a link to reset your password.",
	})
}

type ResetPasswordRequest struct {
	Token           string `json:"token" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// ResetPassword handles POST /reset-password.
// @Summary Reset password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "password and confirm password are required"})
		return
	}
	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "passwords do not match"})
		return
	}

	if err := h.authUseCase.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "reset link is invalid or expired"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "password update failed"})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Password updated"})
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}
