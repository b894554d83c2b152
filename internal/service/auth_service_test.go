package service

import (
	"context"
	"testing"

	"inkwell/internal/credentials"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

// memoryUserRepo is a map-backed repository for flow tests.
type memoryUserRepo struct {
	nextID uint
	users  map[string]*models.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{nextID: 1, users: make(map[string]*models.User)}
}

func (r *memoryUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, models.NewNotFoundError("User", id)
}

func (r *memoryUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if u, ok := r.users[username]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *memoryUserRepo) Create(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.Username]; ok {
		return models.NewConflictError("The username '" + user.Username + "' is already taken")
	}
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.Username] = &copied
	return nil
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewAuthService(repo, credentials.Plaintext{})
	ctx := context.Background()

	first, err := svc.Register(ctx, "ada", "pw1")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	_, err = svc.Register(ctx, "ada", "pw2")
	require.Error(t, err)
	assert.Equal(t, models.CodeConflict, models.CodeOf(err))
	assert.Len(t, repo.users, 1, "failed registration must not create a second user")
}

func TestRegisterRequiresFields(t *testing.T) {
	svc := NewAuthService(newMemoryUserRepo(), credentials.Plaintext{})
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "pw")
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))

	_, err = svc.Register(ctx, "ada", "")
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))
}

func TestLoginTaxonomy(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewAuthService(repo, credentials.Plaintext{})
	ctx := context.Background()

	_, err := svc.Register(ctx, "ada", "S3cret")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		user, err := svc.Login(ctx, "ada", "S3cret")
		require.NoError(t, err)
		assert.Equal(t, "ada", user.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "ada", "s3cret")
		require.Error(t, err)
		assert.Equal(t, models.CodeInvalidCredentials, models.CodeOf(err))
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost", "S3cret")
		require.Error(t, err)
		assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
	})
}

func TestLoginWithBcryptScheme(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewAuthService(repo, credentials.Bcrypt{Cost: 4})
	ctx := context.Background()

	_, err := svc.Register(ctx, "ada", "S3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "S3cret", repo.users["ada"].Password,
		"bcrypt scheme must not store the password verbatim")

	_, err = svc.Login(ctx, "ada", "S3cret")
	assert.NoError(t, err)

	_, err = svc.Login(ctx, "ada", "wrong")
	assert.Equal(t, models.CodeInvalidCredentials, models.CodeOf(err))
}

func TestRegisterSurfacesLookupError(t *testing.T) {
	boom := models.NewInternalError(assert.AnError)
	svc := NewAuthService(&userRepoStub{
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, boom },
	}, credentials.Plaintext{})

	_, err := svc.Register(context.Background(), "ada", "pw")
	assert.ErrorIs(t, err, boom)
}
