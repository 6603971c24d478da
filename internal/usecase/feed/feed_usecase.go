package feed

import (
	"context"
	"fmt"

	"github.com/stunite/backend/internal/domain"
	"github.com/stunite/backend/internal/repository"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

type FeedUseCase struct {
	userRepo repository.UserRepository
}

func NewFeedUseCase(userRepo repository.UserRepository) *FeedUseCase {
	return &FeedUseCase{userRepo: userRepo}
}

// FeedProfile is the public projection of a profile for the browse feed.
// Likers and email never appear here.
type FeedProfile struct {
	Username    string             `json:"username"`
	Age         *int               `json:"age"`
	Gender      *string            `json:"gender"`
	YearOfStudy *string            `json:"year_of_study"`
	Major       *string            `json:"major"`
	Origin      *string            `json:"origin"`
	Residency   *string            `json:"residency"`
	Clubs       []string           `json:"clubs"`
	Questions   domain.QuestionMap `json:"questions"`
	AvatarLink  *string            `json:"avatar_link"`
}

// List returns onboarded profiles for the feed, newest first, excluding the
// caller's own record.
func (uc *FeedUseCase) List(ctx context.Context, viewerUniqueID string, limit, offset int) ([]*FeedProfile, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	users, err := uc.userRepo.ListOnboarded(ctx, viewerUniqueID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	profiles := make([]*FeedProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, &FeedProfile{
			Username:    u.Username,
			Age:         u.Age,
			Gender:      u.Gender,
			YearOfStudy: u.YearOfStudy,
			Major:       u.Major,
			Origin:      u.Origin,
			Residency:   u.Residency,
			Clubs:       u.Clubs,
			Questions:   u.Questions,
			AvatarLink:  u.AvatarLink,
		})
	}
	return profiles, nil
}
