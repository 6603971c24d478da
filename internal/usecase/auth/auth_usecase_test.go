package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/stunite/backend/internal/domain"
	"github.com/stunite/backend/internal/repository"
)

type fakeUserRepo struct {
	repository.UserRepository
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailTaken
		}
	}
	r.users[user.UniqueID] = user
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, uniqueID, passwordHash string) error {
	u, ok := r.users[uniqueID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*domain.Session{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, s *domain.Session) error {
	r.sessions[s.TokenHash] = s
	return nil
}

func (r *fakeSessionRepo) GetByTokenHash(_ context.Context, tokenHash string) (*domain.Session, error) {
	if s, ok := r.sessions[tokenHash]; ok {
		return s, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (r *fakeSessionRepo) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	delete(r.sessions, tokenHash)
	return nil
}

func (r *fakeSessionRepo) DeleteByUser(_ context.Context, userUniqueID string) error {
	for hash, s := range r.sessions {
		if s.UserUniqueID == userUniqueID {
			delete(r.sessions, hash)
		}
	}
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) { return 0, nil }

type fakeResetRepo struct {
	resets map[string]*domain.PasswordReset
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{resets: map[string]*domain.PasswordReset{}}
}

func (r *fakeResetRepo) Create(_ context.Context, reset *domain.PasswordReset) error {
	r.resets[reset.TokenHash] = reset
	return nil
}

func (r *fakeResetRepo) GetByTokenHash(_ context.Context, tokenHash string) (*domain.PasswordReset, error) {
	if reset, ok := r.resets[tokenHash]; ok {
		return reset, nil
	}
	return nil, domain.ErrInvalidToken
}

func (r *fakeResetRepo) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	delete(r.resets, tokenHash)
	return nil
}

func newTestUseCase() (*AuthUseCase, *fakeUserRepo, *fakeSessionRepo, *fakeResetRepo) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	resets := newFakeResetRepo()
	uc := NewAuthUseCase(users, sessions, resets, nil,
		"0123456789abcdef0123456789abcdef", 7*24*time.Hour, "https://stunite.tech")
	return uc, users, sessions, resets
}

func TestIsEduEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"jane.doe@stonybrook.edu", true},
		{"JANE.DOE@STONYBROOK.EDU", true},
		{"jane_doe-1@stonybrook.edu", true},
		{"jane@gmail.com", false},
		{"jane@stonybrook.edu.evil.com", false},
		{"jane@cs.stonybrook.edu", false},
		{"@stonybrook.edu", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEduEmail(tt.email))
		})
	}
}

func TestSignUp(t *testing.T) {
	uc, users, _, _ := newTestUseCase()
	ctx := context.Background()

	user, err := uc.SignUp(ctx, "Jane.Doe@stonybrook.edu", "supersecret")
	require.NoError(t, err)

	assert.Equal(t, "jane.doe@stonybrook.edu", user.Email)
	assert.Equal(t, user.UniqueID, user.Username)
	assert.False(t, user.OnboardingComplete)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))

	_, err = uc.SignUp(ctx, "jane.doe@stonybrook.edu", "supersecret")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.Len(t, users.users, 1)
}

func TestSignUpRejectsBadInput(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.SignUp(ctx, "jane@gmail.com", "supersecret")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.SignUp(ctx, "jane@stonybrook.edu", "short")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSignInAndVerify(t *testing.T) {
	uc, _, sessions, _ := newTestUseCase()
	ctx := context.Background()

	user, err := uc.SignUp(ctx, "jane@stonybrook.edu", "supersecret")
	require.NoError(t, err)

	res, err := uc.SignIn(ctx, "jane@stonybrook.edu", "supersecret", "test-agent", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Len(t, sessions.sessions, 1)

	uniqueID, err := uc.VerifyToken(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.UniqueID, uniqueID)
}

func TestSignInWrongCredentials(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.SignUp(ctx, "jane@stonybrook.edu", "supersecret")
	require.NoError(t, err)

	_, err = uc.SignIn(ctx, "jane@stonybrook.edu", "wrongpassword", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.SignIn(ctx, "nobody@stonybrook.edu", "supersecret", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSignOutInvalidatesToken(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.SignUp(ctx, "jane@stonybrook.edu", "supersecret")
	require.NoError(t, err)
	res, err := uc.SignIn(ctx, "jane@stonybrook.edu", "supersecret", "", "")
	require.NoError(t, err)

	require.NoError(t, uc.SignOut(ctx, res.Token))

	// The JWT is still cryptographically valid but its session row is gone.
	_, err = uc.VerifyToken(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestVerifyTokenGarbage(t *testing.T) {
	uc, _, _, _ := newTestUseCase()

	_, err := uc.VerifyToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	uc, _, _, resets := newTestUseCase()

	// Unknown addresses succeed without creating a token, so the endpoint
	// cannot be used to enumerate accounts.
	require.NoError(t, uc.ForgotPassword(context.Background(), "nobody@stonybrook.edu"))
	assert.Empty(t, resets.resets)
}

func TestForgotPasswordStoresHashedToken(t *testing.T) {
	uc, _, _, resets := newTestUseCase()
	ctx := context.Background()

	user, err := uc.SignUp(ctx, "jane@stonybrook.edu", "supersecret")
	require.NoError(t, err)

	require.NoError(t, uc.ForgotPassword(ctx, "jane@stonybrook.edu"))
	require.Len(t, resets.resets, 1)
	for hash, reset := range resets.resets {
		assert.Len(t, hash, 64)
		assert.Equal(t, user.UniqueID, reset.UserUniqueID)
		assert.True(t, reset.ExpiresAt.After(time.Now()))
	}
}

func TestResetPassword(t *testing.T) {
	uc, _, _, resets := newTestUseCase()
	ctx := context.Background()

	user, err := uc.SignUp(ctx, "jane@stonybrook.edu", "supersecret")
	require.NoError(t, err)

	token := "raw-reset-token"
	resets.resets[uc.hashToken(token)] = &domain.PasswordReset{
		TokenHash:    uc.hashToken(token),
		UserUniqueID: user.UniqueID,
		ExpiresAt:    time.Now().Add(time.Hour),
	}

	require.NoError(t, uc.ResetPassword(ctx, token, "brand-new-password"))
	assert.Empty(t, resets.resets)

	_, err = uc.SignIn(ctx, "jane@stonybrook.edu", "brand-new-password", "", "")
	assert.NoError(t, err)
	_, err = uc.SignIn(ctx, "jane@stonybrook.edu", "supersecret", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestResetPasswordRevokesSessions(t *testing.T) {
	uc, _, sessions, resets := newTestUseCase()
	ctx := context.Background()

	user, err := uc.SignUp(ctx, "jane@stonybrook.edu", "supersecret")
	require.NoError(t, err)
	res, err := uc.SignIn(ctx, "jane@stonybrook.edu", "supersecret", "", "")
	require.NoError(t, err)

	token := "raw-reset-token"
	resets.resets[uc.hashToken(token)] = &domain.PasswordReset{
		TokenHash:    uc.hashToken(token),
		UserUniqueID: user.UniqueID,
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	require.NoError(t, uc.ResetPassword(ctx, token, "brand-new-password"))

	// The pre-reset session is dead even though its JWT is still valid.
	assert.Empty(t, sessions.sessions)
	_, err = uc.VerifyToken(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	uc, _, _, resets := newTestUseCase()
	ctx := context.Background()

	user, err := uc.SignUp(ctx, "jane@stonybrook.edu", "supersecret")
	require.NoError(t, err)

	token := "stale-token"
	resets.resets[uc.hashToken(token)] = &domain.PasswordReset{
		TokenHash:    uc.hashToken(token),
		UserUniqueID: user.UniqueID,
		ExpiresAt:    time.Now().Add(-time.Minute),
	}

	err = uc.ResetPassword(ctx, token, "brand-new-password")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	assert.Empty(t, resets.resets)
}
