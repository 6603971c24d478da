package repository

import (
	"context"

	"github.com/stunite/backend/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	// DeleteByUser revokes every session of one account, used when the
	// password changes.
	DeleteByUser(ctx context.Context, userUniqueID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type PasswordResetRepository interface {
	Create(ctx context.Context, reset *domain.PasswordReset) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.PasswordReset, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
}
