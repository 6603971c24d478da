package profile

import (
	"context"
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stunite/backend/internal/domain"
	"github.com/stunite/backend/internal/repository"
)

type fakeUserRepo struct {
	repository.UserRepository
	users   []*domain.User
	updated int
	avatars map[string]string
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, _ *domain.User) error {
	r.updated++
	return nil
}

func (r *fakeUserRepo) UpdateAvatarLink(_ context.Context, username, avatarLink string) error {
	if r.avatars == nil {
		r.avatars = map[string]string{}
	}
	r.avatars[username] = avatarLink
	return nil
}

func seeded() *fakeUserRepo {
	age := 20
	avatar := "https://cdn.example.com/alice.png"
	alice := &domain.User{
		UniqueID:   "u-alice",
		Username:   "alice",
		Email:      "alice@stonybrook.edu",
		Age:        &age,
		Likers:     pq.StringArray{"bob", "carol"},
		AvatarLink: &avatar,
	}
	bob := &domain.User{UniqueID: "u-bob", Username: "bob", Email: "bob@stonybrook.edu"}
	return &fakeUserRepo{users: []*domain.User{alice, bob}}
}

func TestGetByUsernameAsOwner(t *testing.T) {
	uc := NewProfileUseCase(seeded())

	view, err := uc.GetByUsername(context.Background(), "u-alice", "alice")
	require.NoError(t, err)
	assert.True(t, view.IsOwner)
	assert.Equal(t, []string{"bob", "carol"}, view.Likers)
	assert.Equal(t, "https://cdn.example.com/alice.png", view.AvatarLink)
}

func TestGetByUsernameAsVisitor(t *testing.T) {
	uc := NewProfileUseCase(seeded())

	view, err := uc.GetByUsername(context.Background(), "u-bob", "alice")
	require.NoError(t, err)
	assert.False(t, view.IsOwner)
	assert.Empty(t, view.Likers)
}

func TestGetByUsernameDefaultAvatar(t *testing.T) {
	uc := NewProfileUseCase(seeded())

	view, err := uc.GetByUsername(context.Background(), "u-alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, DefaultAvatarURL, view.AvatarLink)
}

func TestGetEditableOwnershipMismatch(t *testing.T) {
	uc := NewProfileUseCase(seeded())
	ctx := context.Background()

	// A foreign profile and a missing profile are indistinguishable.
	_, errForeign := uc.GetEditable(ctx, "u-bob", "alice")
	_, errMissing := uc.GetEditable(ctx, "u-bob", "nobody")
	assert.ErrorIs(t, errForeign, domain.ErrUserNotFound)
	assert.ErrorIs(t, errMissing, domain.ErrUserNotFound)

	user, err := uc.GetEditable(ctx, "u-alice", "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	repo := seeded()
	uc := NewProfileUseCase(repo)

	newAge := 21
	major := "Applied Math"
	user, err := uc.Update(context.Background(), "u-alice", "alice", &UpdateRequest{
		Age:   &newAge,
		Major: &major,
	})
	require.NoError(t, err)
	assert.Equal(t, 21, *user.Age)
	assert.Equal(t, "Applied Math", *user.Major)
	assert.Nil(t, user.Gender)
	assert.Equal(t, 1, repo.updated)
}

func TestUpdateForeignProfile(t *testing.T) {
	repo := seeded()
	uc := NewProfileUseCase(repo)

	age := 30
	_, err := uc.Update(context.Background(), "u-bob", "alice", &UpdateRequest{Age: &age})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Equal(t, 0, repo.updated)
}

func TestSetAvatar(t *testing.T) {
	repo := seeded()
	uc := NewProfileUseCase(repo)
	ctx := context.Background()

	require.NoError(t, uc.SetAvatar(ctx, "u-alice", "alice", "https://cdn.example.com/new.png"))
	assert.Equal(t, "https://cdn.example.com/new.png", repo.avatars["alice"])

	err := uc.SetAvatar(ctx, "u-bob", "alice", "https://cdn.example.com/sneaky.png")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
