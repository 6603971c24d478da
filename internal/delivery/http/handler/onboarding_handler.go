package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stunite/backend/internal/delivery/http/middleware"
	"github.com/stunite/backend/internal/domain"
	"github.com/stunite/backend/internal/usecase/onboarding"
)

type OnboardingHandler struct {
	onboardingUseCase *onboarding.OnboardingUseCase
}

func NewOnboardingHandler(onboardingUseCase *onboarding.OnboardingUseCase) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingUseCase: onboardingUseCase,
	}
}

// GetSteps handles GET /onboarding: the ordered step definitions the client
// walks through.
// @Summary Onboarding step definitions
// @Tags onboarding
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /onboarding [get]
func (h *OnboardingHandler) GetSteps(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"steps":             onboarding.Steps,
		"question_pool":     onboarding.QuestionPool,
		"popular_majors":    onboarding.PopularMajors,
		"popular_countries": onboarding.PopularCountries,
	})
}

type ValidateStepRequest struct {
	Step       onboarding.StepKey    `json:"step" binding:"required"`
	Submission onboarding.Submission `json:"submission"`
}

// ValidateStep handles POST /api/onboarding/validate: the step-local check
// run on Next before the client advances.
// @Summary Validate one onboarding step
// @Tags onboarding
// @Accept json
// @Produce json
// @Param request body ValidateStepRequest true "Step key and collected answers"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/onboarding/validate [post]
func (h *OnboardingHandler) ValidateStep(c *gin.Context) {
	uniqueID := c.GetString(middleware.ContextKeyUniqueID)

	var req ValidateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	err := h.onboardingUseCase.ValidateStep(c.Request.Context(), uniqueID, req.Step, &req.Submission)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "username already taken"})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// Submit handles POST /api/onboarding/submit: the terminal batched write.
// @Summary Complete onboarding
// @Tags onboarding
// @Accept json
// @Produce json
// @Param request body onboarding.Submission true "All collected answers"
// @Success 200 {object} domain.User
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/onboarding/submit [post]
func (h *OnboardingHandler) Submit(c *gin.Context) {
	uniqueID := c.GetString(middleware.ContextKeyUniqueID)

	var sub onboarding.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.onboardingUseCase.Submit(c.Request.Context(), uniqueID, &sub)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "username already taken"})
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to complete onboarding"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}
