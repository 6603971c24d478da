package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stunite/backend/internal/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func userRows(username string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"unique_id", "username", "email", "password_hash", "age", "gender",
		"year_of_study", "major", "origin", "residency", "clubs", "questions",
		"social_media", "avatar_link", "likers", "onboarding_complete",
		"created_at", "updated_at",
	}).AddRow(
		"u-1", username, username+"@stonybrook.edu", "hash", nil, nil,
		nil, nil, nil, nil, []byte("{}"), []byte("{}"),
		nil, nil, []byte("{}"), true,
		now, now,
	)
}

// Usernames may contain '_', which LIKE-family operators treat as a
// single-character wildcard. Lookups must compare under LOWER, never match a
// pattern, or "a_c" resolves "abc" and a like mutates every matching row.
func TestGetByUsernameComparesExactly(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE LOWER(username) = LOWER($1)`)).
		WithArgs("a_c").
		WillReturnRows(userRows("a_c"))

	user, err := repo.GetByUsername(context.Background(), "a_c")
	require.NoError(t, err)
	assert.Equal(t, "a_c", user.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUsernameNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	// A pattern character reaches the statement as a plain bind literal.
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE LOWER(username) = LOWER($1)`)).
		WithArgs("%").
		WillReturnRows(sqlmock.NewRows([]string{"unique_id"}))

	_, err := repo.GetByUsername(context.Background(), "%")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddLikerExactTargetAndGuard(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	query := regexp.QuoteMeta(
		`SET likers = array_append(likers, $1), updated_at = CURRENT_TIMESTAMP
		WHERE LOWER(username) = LOWER($2) AND NOT ($1 = ANY(likers))`)

	mock.ExpectExec(query).
		WithArgs("viewer", "a_c").
		WillReturnResult(sqlmock.NewResult(0, 1))
	added, err := repo.AddLiker(context.Background(), "a_c", "viewer")
	require.NoError(t, err)
	assert.True(t, added)

	// Second add hits the membership guard and changes nothing.
	mock.ExpectExec(query).
		WithArgs("viewer", "a_c").
		WillReturnResult(sqlmock.NewResult(0, 0))
	added, err = repo.AddLiker(context.Background(), "a_c", "viewer")
	require.NoError(t, err)
	assert.False(t, added)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveLikerExactTarget(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(
		`SET likers = array_remove(likers, $1), updated_at = CURRENT_TIMESTAMP
		WHERE LOWER(username) = LOWER($2)`)).
		WithArgs("viewer", "a_c").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.RemoveLiker(context.Background(), "a_c", "viewer"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAvatarLinkExactTarget(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(
		`SET avatar_link = $1, updated_at = CURRENT_TIMESTAMP
		WHERE LOWER(username) = LOWER($2)`)).
		WithArgs("https://cdn.example.com/a.png", "a_c").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateAvatarLink(context.Background(), "a_c", "https://cdn.example.com/a.png"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
