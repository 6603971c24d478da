package like

import (
	"context"
	"fmt"

	"github.com/stunite/backend/internal/domain"
	"github.com/stunite/backend/internal/infrastructure/mail"
	"github.com/stunite/backend/internal/repository"
)

// Notifier dispatches the like notification. Nil means mail is unconfigured
// and the like still succeeds silently.
type Notifier interface {
	SendLikeAlert(ctx context.Context, alert mail.LikeAlert) (string, error)
}

type LikeUseCase struct {
	userRepo repository.UserRepository
	notifier Notifier
	siteURL  string
}

func NewLikeUseCase(userRepo repository.UserRepository, notifier Notifier, siteURL string) *LikeUseCase {
	return &LikeUseCase{
		userRepo: userRepo,
		notifier: notifier,
		siteURL:  siteURL,
	}
}

// ToggleResult reports the direction the toggle resolved to.
type ToggleResult struct {
	Target string `json:"target"`
	Liked  bool   `json:"liked"`
}

// ToggleLike flips the viewer's membership in the target's likers set.
// Toggling on fires a best-effort notification; its failure is logged and
// never rolls back the like. Adds and removes are atomic on the store side,
// so concurrent toggles cannot drop each other and the set stays
// duplicate-free.
func (uc *LikeUseCase) ToggleLike(ctx context.Context, viewerUniqueID, targetUsername string) (*ToggleResult, error) {
	viewer, err := uc.userRepo.GetByUniqueID(ctx, viewerUniqueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get viewer: %w", err)
	}

	target, err := uc.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}

	if target.UniqueID == viewer.UniqueID {
		return nil, domain.ErrSelfLike
	}

	if target.HasLiker(viewer.Username) {
		if err := uc.userRepo.RemoveLiker(ctx, target.Username, viewer.Username); err != nil {
			return nil, fmt.Errorf("failed to remove like: %w", err)
		}
		return &ToggleResult{Target: target.Username, Liked: false}, nil
	}

	added, err := uc.userRepo.AddLiker(ctx, target.Username, viewer.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to add like: %w", err)
	}

	if added {
		uc.notify(ctx, viewer, target)
	}

	return &ToggleResult{Target: target.Username, Liked: true}, nil
}

func (uc *LikeUseCase) notify(ctx context.Context, viewer, target *domain.User) {
	if uc.notifier == nil {
		return
	}
	_, err := uc.notifier.SendLikeAlert(ctx, mail.LikeAlert{
		To:          target.Email,
		FirstName:   target.Username,
		LikedBy:     viewer.Username,
		SocialMedia: viewer.ContactHandle(),
		SiteURL:     uc.siteURL,
	})
	if err != nil {
		fmt.Printf("Warning: like notification to %s failed: %v\n", target.Email, err)
	}
}
