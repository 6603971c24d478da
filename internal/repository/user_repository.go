package repository

import (
	"context"

	"github.com/stunite/backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUniqueID(ctx context.Context, uniqueID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByUsername matches case-insensitively; usernames appear in URLs.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetOnboardingComplete is the single point read the gating middleware
	// performs per request.
	GetOnboardingComplete(ctx context.Context, uniqueID string) (bool, error)

	// CompleteOnboarding writes all onboarding fields plus the flag in one
	// statement.
	CompleteOnboarding(ctx context.Context, user *domain.User) error
	UpdateProfile(ctx context.Context, user *domain.User) error
	UpdateAvatarLink(ctx context.Context, username, avatarLink string) error
	UpdatePassword(ctx context.Context, uniqueID, passwordHash string) error

	// AddLiker appends atomically and reports whether the row changed; a
	// duplicate add is a no-op.
	AddLiker(ctx context.Context, targetUsername, likerUsername string) (bool, error)
	RemoveLiker(ctx context.Context, targetUsername, likerUsername string) error

	// ListOnboarded lists feed candidates, newest first, excluding the caller.
	ListOnboarded(ctx context.Context, excludeUniqueID string, limit, offset int) ([]*domain.User, error)
}
