package http

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stunite/backend/internal/delivery/http/handler"
	"github.com/stunite/backend/internal/delivery/http/middleware"
	"github.com/stunite/backend/internal/usecase/auth"
)

type Router struct {
	authHandler       *handler.AuthHandler
	onboardingHandler *handler.OnboardingHandler
	feedHandler       *handler.FeedHandler
	profileHandler    *handler.ProfileHandler
	likeHandler       *handler.LikeHandler
	mailHandler       *handler.MailHandler
	uploadHandler     *handler.UploadHandler
	gateMiddleware    *middleware.GateMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	onboardingHandler *handler.OnboardingHandler,
	feedHandler *handler.FeedHandler,
	profileHandler *handler.ProfileHandler,
	likeHandler *handler.LikeHandler,
	mailHandler *handler.MailHandler,
	uploadHandler *handler.UploadHandler,
	gateMiddleware *middleware.GateMiddleware,
) *Router {
	return &Router{
		authHandler:       authHandler,
		onboardingHandler: onboardingHandler,
		feedHandler:       feedHandler,
		profileHandler:    profileHandler,
		likeHandler:       likeHandler,
		mailHandler:       mailHandler,
		uploadHandler:     uploadHandler,
		gateMiddleware:    gateMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	registerValidations()

	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// Every other route sits behind the gate; the redirect table in the
	// middleware decides reachability per session state.
	router.Use(r.gateMiddleware.Gate())

	router.GET("/", r.feedHandler.Home)

	// Auth pages
	router.GET("/sign-up", pageHandler("sign-up"))
	router.POST("/sign-up", r.authHandler.SignUp)
	router.GET("/sign-in", pageHandler("sign-in"))
	router.POST("/sign-in", r.authHandler.SignIn)
	router.POST("/sign-out", r.authHandler.SignOut)
	router.GET("/forgot-password", pageHandler("forgot-password"))
	router.POST("/forgot-password", r.authHandler.ForgotPassword)
	router.GET("/reset-password", pageHandler("reset-password"))
	router.POST("/reset-password", r.authHandler.ResetPassword)

	// Onboarding
	router.GET("/onboarding", r.onboardingHandler.GetSteps)

	// Profile pages; view and edit share one wildcard because gin cannot
	// mix /profile/:username with /profile/edit/:username.
	router.GET("/profile/*page", r.profileHandler.Show)
	router.POST("/profile/*page", r.profileHandler.Save)

	api := router.Group("/api")
	{
		onboarding := api.Group("/onboarding")
		{
			onboarding.POST("/validate", r.onboardingHandler.ValidateStep)
			onboarding.POST("/submit", r.onboardingHandler.Submit)
		}

		api.POST("/like", r.likeHandler.ToggleLike)
		api.POST("/sendMail", r.mailHandler.SendMail)
		api.POST("/avatar/upload", r.uploadHandler.UploadAvatar)
	}

	return router
}

func pageHandler(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"page": name,
		})
	}
}

func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("eduemail", func(fl validator.FieldLevel) bool {
			return auth.IsEduEmail(fl.Field().String())
		})
	}
}
