package profile

import (
	"context"
	"fmt"

	"github.com/stunite/backend/internal/domain"
	"github.com/stunite/backend/internal/repository"
)

// DefaultAvatarURL is served when a profile never uploaded an avatar.
const DefaultAvatarURL = "/images/default-avatar.png"

type ProfileUseCase struct {
	userRepo repository.UserRepository
}

func NewProfileUseCase(userRepo repository.UserRepository) *ProfileUseCase {
	return &ProfileUseCase{userRepo: userRepo}
}

// ProfileView is what the profile page renders. Likers are populated only
// when the session owns the profile.
type ProfileView struct {
	Username    string             `json:"username"`
	Age         *int               `json:"age"`
	Gender      *string            `json:"gender"`
	YearOfStudy *string            `json:"year_of_study"`
	Major       *string            `json:"major"`
	Origin      *string            `json:"origin"`
	Residency   *string            `json:"residency"`
	Clubs       []string           `json:"clubs"`
	Questions   domain.QuestionMap `json:"questions"`
	SocialMedia *string            `json:"social_media,omitempty"`
	AvatarLink  string             `json:"avatar_link"`
	IsOwner     bool               `json:"is_owner"`
	Likers      []string           `json:"likers,omitempty"`
}

// UpdateRequest carries the editable profile fields. Username and email are
// immutable once onboarding completed.
type UpdateRequest struct {
	Age         *int      `json:"age" binding:"omitempty,min=16,max=100"`
	Gender      *string   `json:"gender" binding:"omitempty,max=50"`
	YearOfStudy *string   `json:"year_of_study" binding:"omitempty,max=50"`
	Major       *string   `json:"major" binding:"omitempty,max=100"`
	Origin      *string   `json:"origin" binding:"omitempty,max=100"`
	Residency   *string   `json:"residency" binding:"omitempty,max=100"`
	Clubs       *[]string `json:"clubs" binding:"omitempty,max=10"`
	AvatarLink  *string   `json:"avatar_link" binding:"omitempty,url"`
}

// GetByUsername returns the profile view for a page render.
func (uc *ProfileUseCase) GetByUsername(ctx context.Context, sessionUniqueID, username string) (*ProfileView, error) {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	view := &ProfileView{
		Username:    user.Username,
		Age:         user.Age,
		Gender:      user.Gender,
		YearOfStudy: user.YearOfStudy,
		Major:       user.Major,
		Origin:      user.Origin,
		Residency:   user.Residency,
		Clubs:       user.Clubs,
		Questions:   user.Questions,
		SocialMedia: user.SocialMedia,
		AvatarLink:  DefaultAvatarURL,
		IsOwner:     user.IsOwner(sessionUniqueID),
	}
	if user.AvatarLink != nil && *user.AvatarLink != "" {
		view.AvatarLink = *user.AvatarLink
	}
	if view.IsOwner {
		view.Likers = user.Likers
	}
	return view, nil
}

// GetEditable returns the profile for the edit page. An ownership mismatch
// answers exactly like an unknown username, so profile existence never leaks.
func (uc *ProfileUseCase) GetEditable(ctx context.Context, sessionUniqueID, username string) (*domain.User, error) {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !user.IsOwner(sessionUniqueID) {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// Update applies an edit to the caller's own profile.
func (uc *ProfileUseCase) Update(ctx context.Context, sessionUniqueID, username string, req *UpdateRequest) (*domain.User, error) {
	user, err := uc.GetEditable(ctx, sessionUniqueID, username)
	if err != nil {
		return nil, err
	}

	if req.Age != nil {
		user.Age = req.Age
	}
	if req.Gender != nil {
		user.Gender = req.Gender
	}
	if req.YearOfStudy != nil {
		user.YearOfStudy = req.YearOfStudy
	}
	if req.Major != nil {
		user.Major = req.Major
	}
	if req.Origin != nil {
		user.Origin = req.Origin
	}
	if req.Residency != nil {
		user.Residency = req.Residency
	}
	if req.Clubs != nil {
		user.Clubs = *req.Clubs
	}
	if req.AvatarLink != nil {
		user.AvatarLink = req.AvatarLink
	}

	if err := uc.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// SetAvatar persists an uploaded avatar URL on the caller's own profile.
func (uc *ProfileUseCase) SetAvatar(ctx context.Context, sessionUniqueID, username, avatarURL string) error {
	user, err := uc.GetEditable(ctx, sessionUniqueID, username)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdateAvatarLink(ctx, user.Username, avatarURL)
}
