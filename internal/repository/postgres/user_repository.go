package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stunite/backend/internal/domain"
	"github.com/stunite/backend/internal/repository"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `
	unique_id, username, email, password_hash, age, gender, year_of_study,
	major, origin, residency, clubs, questions, social_media, avatar_link,
	likers, onboarding_complete, created_at, updated_at
`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (unique_id, username, email, password_hash, clubs, questions, likers, onboarding_complete)
		VALUES ($1, $2, $3, $4, '{}', '{}', '{}', FALSE)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		user.UniqueID, user.Username, user.Email, user.PasswordHash,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByUniqueID(ctx context.Context, uniqueID string) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE unique_id = $1`
	err := r.db.GetContext(ctx, &user, query, uniqueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	// Exact match under LOWER, never a pattern operator: usernames may
	// legally contain '_', which ILIKE would treat as a wildcard.
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(username) = LOWER($1)`
	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetOnboardingComplete(ctx context.Context, uniqueID string) (bool, error) {
	var complete bool
	query := `SELECT onboarding_complete FROM users WHERE unique_id = $1`
	err := r.db.GetContext(ctx, &complete, query, uniqueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, domain.ErrUserNotFound
		}
		return false, err
	}
	return complete, nil
}

func (r *userRepository) CompleteOnboarding(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET username = $1, age = $2, gender = $3, year_of_study = $4,
		    major = $5, origin = $6, residency = $7, clubs = $8,
		    questions = $9, social_media = $10,
		    onboarding_complete = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE unique_id = $11
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		user.Username, user.Age, user.Gender, user.YearOfStudy,
		user.Major, user.Origin, user.Residency, user.Clubs,
		user.Questions, user.SocialMedia,
		user.UniqueID,
	).Scan(&user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrUsernameTaken
		}
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return err
	}
	user.OnboardingComplete = true
	return nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET age = $1, gender = $2, year_of_study = $3, major = $4,
		    origin = $5, residency = $6, clubs = $7, avatar_link = $8,
		    updated_at = CURRENT_TIMESTAMP
		WHERE unique_id = $9
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		user.Age, user.Gender, user.YearOfStudy, user.Major,
		user.Origin, user.Residency, user.Clubs, user.AvatarLink,
		user.UniqueID,
	).Scan(&user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	return err
}

func (r *userRepository) UpdateAvatarLink(ctx context.Context, username, avatarLink string) error {
	query := `
		UPDATE users
		SET avatar_link = $1, updated_at = CURRENT_TIMESTAMP
		WHERE LOWER(username) = LOWER($2)
	`
	result, err := r.db.ExecContext(ctx, query, avatarLink, username)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, uniqueID, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $1, updated_at = CURRENT_TIMESTAMP
		WHERE unique_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, passwordHash, uniqueID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AddLiker uses array_append guarded by a membership check in the same
// statement, so concurrent likes on one target cannot drop each other and a
// duplicate add never produces a second entry.
func (r *userRepository) AddLiker(ctx context.Context, targetUsername, likerUsername string) (bool, error) {
	query := `
		UPDATE users
		SET likers = array_append(likers, $1), updated_at = CURRENT_TIMESTAMP
		WHERE LOWER(username) = LOWER($2) AND NOT ($1 = ANY(likers))
	`
	result, err := r.db.ExecContext(ctx, query, likerUsername, targetUsername)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *userRepository) RemoveLiker(ctx context.Context, targetUsername, likerUsername string) error {
	query := `
		UPDATE users
		SET likers = array_remove(likers, $1), updated_at = CURRENT_TIMESTAMP
		WHERE LOWER(username) = LOWER($2)
	`
	result, err := r.db.ExecContext(ctx, query, likerUsername, targetUsername)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) ListOnboarded(ctx context.Context, excludeUniqueID string, limit, offset int) ([]*domain.User, error) {
	var users []*domain.User
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE onboarding_complete = TRUE AND unique_id <> $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &users, query, excludeUniqueID, limit, offset)
	return users, err
}
