package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stunite/backend/internal/config"
	"github.com/stunite/backend/internal/delivery/http"
	"github.com/stunite/backend/internal/delivery/http/handler"
	"github.com/stunite/backend/internal/delivery/http/middleware"
	"github.com/stunite/backend/internal/infrastructure/cache"
	"github.com/stunite/backend/internal/infrastructure/database"
	"github.com/stunite/backend/internal/infrastructure/mail"
	"github.com/stunite/backend/internal/infrastructure/server"
	"github.com/stunite/backend/internal/infrastructure/storage"
	"github.com/stunite/backend/internal/repository/postgres"
	"github.com/stunite/backend/internal/usecase/auth"
	"github.com/stunite/backend/internal/usecase/feed"
	"github.com/stunite/backend/internal/usecase/like"
	"github.com/stunite/backend/internal/usecase/onboarding"
	"github.com/stunite/backend/internal/usecase/profile"
)

// Container holds all application dependencies. Every external client is
// constructed exactly once here and injected; nothing lives at package scope.
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis; the onboarding-flag cache degrades to a no-op
	// without it.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient, err = database.NewRedisClient(&cfg.Redis)
		if err != nil {
			fmt.Printf("Warning: failed to initialize redis, flag cache disabled: %v\n", err)
			redisClient = nil
		}
	}

	// Initialize mail client; absence of credentials disables notifications
	// instead of failing startup.
	var mailClient *mail.Client
	if cfg.Mail.APIKey != "" {
		mailClient, err = mail.NewClient(&cfg.Mail)
		if err != nil {
			fmt.Printf("Warning: failed to initialize mail client: %v\n", err)
			mailClient = nil
		}
	} else {
		fmt.Println("Warning: MAILGUN_API_KEY not set, notifications disabled")
	}

	// Initialize avatar storage; same degradation policy as mail.
	var uploader storage.Uploader
	if cfg.Storage.CloudinaryURL != "" {
		cld, err := storage.NewCloudinaryUploader(&cfg.Storage)
		if err != nil {
			fmt.Printf("Warning: failed to initialize cloudinary: %v\n", err)
		} else {
			uploader = cld
		}
	} else {
		fmt.Println("Warning: CLOUDINARY_URL not set, avatar upload disabled")
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	resetRepo := postgres.NewPasswordResetRepository(db)

	// One sweep at startup; rows for long-dead sessions otherwise pile up
	// forever.
	if n, err := sessionRepo.DeleteExpired(context.Background()); err != nil {
		fmt.Printf("Warning: failed to delete expired sessions: %v\n", err)
	} else if n > 0 {
		fmt.Printf("Deleted %d expired sessions\n", n)
	}

	flagCache := cache.NewOnboardingFlagCache(redisClient)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(
		userRepo,
		sessionRepo,
		resetRepo,
		mailClient,
		cfg.JWT.Secret,
		cfg.JWT.SessionExpiry,
		cfg.Site.URL,
	)

	onboardingUseCase := onboarding.NewOnboardingUseCase(userRepo, flagCache)
	feedUseCase := feed.NewFeedUseCase(userRepo)
	profileUseCase := profile.NewProfileUseCase(userRepo)

	var notifier like.Notifier
	if mailClient != nil {
		notifier = mailClient
	}
	likeUseCase := like.NewLikeUseCase(userRepo, notifier, cfg.Site.URL)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase, cfg.Site.CookieName)
	onboardingHandler := handler.NewOnboardingHandler(onboardingUseCase)
	feedHandler := handler.NewFeedHandler(feedUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	likeHandler := handler.NewLikeHandler(likeUseCase)
	mailHandler := handler.NewMailHandler(mailClient)
	uploadHandler := handler.NewUploadHandler(uploader)

	// Initialize middleware
	gateMiddleware := middleware.NewGateMiddleware(authUseCase, userRepo, flagCache, cfg.Site.CookieName)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		onboardingHandler,
		feedHandler,
		profileHandler,
		likeHandler,
		mailHandler,
		uploadHandler,
		gateMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter)

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			fmt.Printf("Error closing Redis: %v\n", err)
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
