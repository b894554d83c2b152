package service

import (
	"context"
	"strings"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn       func(context.Context, *models.Post) error
	getByIDFn      func(context.Context, uint) (*models.Post, error)
	listFn         func(context.Context) ([]*models.Post, error)
	listByAuthorFn func(context.Context, uint) ([]*models.Post, error)
	updateFn       func(context.Context, *models.Post) error
	deleteFn       func(context.Context, uint) error
	lengthsFn      func(context.Context) ([]int, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) Lengths(ctx context.Context) ([]int, error) {
	return s.lengthsFn(ctx)
}

func ownedPostRepo(post *models.Post) *postRepoStub {
	return &postRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			if id != post.ID {
				return nil, models.NewNotFoundError("Post", id)
			}
			copied := *post
			return &copied, nil
		},
		updateFn: func(_ context.Context, p *models.Post) error {
			post.Title = p.Title
			post.Content = p.Content
			return nil
		},
		deleteFn: func(_ context.Context, id uint) error { return nil },
	}
}

func TestCreatePostRequiresIdentity(t *testing.T) {
	svc := NewPostService(&postRepoStub{})
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, nil, "Title", "Content")
	assert.Equal(t, models.CodeUnauthenticated, models.CodeOf(err))

	_, err = svc.CreatePost(ctx, &models.User{}, "Title", "Content")
	assert.Equal(t, models.CodeUnauthenticated, models.CodeOf(err))
}

func TestCreatePostValidation(t *testing.T) {
	svc := NewPostService(&postRepoStub{})
	ctx := context.Background()
	actor := &models.User{ID: 1, Username: "ada"}

	_, err := svc.CreatePost(ctx, actor, "", "Content")
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))

	_, err = svc.CreatePost(ctx, actor, "Title", "")
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))

	_, err = svc.CreatePost(ctx, actor, strings.Repeat("x", 101), "Content")
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))
}

func TestCreatePostTitleLimitCountsCharacters(t *testing.T) {
	created := false
	repo := &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error {
			created = true
			p.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
	}
	svc := NewPostService(repo)

	// 100 multibyte runes are within the limit even though the byte count
	// is far above it.
	title := strings.Repeat("é", 100)
	_, err := svc.CreatePost(context.Background(), &models.User{ID: 1}, title, "Content")
	require.NoError(t, err)
	assert.True(t, created)
}

func TestUpdatePostOwnership(t *testing.T) {
	owner := &models.User{ID: 3, Username: "ada"}
	stranger := &models.User{ID: 4, Username: "brian"}

	t.Run("owner may edit", func(t *testing.T) {
		post := &models.Post{ID: 7, Title: "old", Content: "old", AuthorID: 3, Author: *owner}
		svc := NewPostService(ownedPostRepo(post))

		updated, err := svc.UpdatePost(context.Background(), owner, 7, "new", "body")
		require.NoError(t, err)
		assert.Equal(t, "new", updated.Title)
		assert.Equal(t, "new", post.Title)
	})

	t.Run("non-owner is denied and nothing changes", func(t *testing.T) {
		post := &models.Post{ID: 7, Title: "old", Content: "old", AuthorID: 3, Author: *owner}
		svc := NewPostService(ownedPostRepo(post))

		_, err := svc.UpdatePost(context.Background(), stranger, 7, "new", "body")
		require.Error(t, err)
		assert.Equal(t, models.CodeUnauthorized, models.CodeOf(err))
		assert.Contains(t, err.Error(), "ada", "denial reason names the owner")
		assert.Equal(t, "old", post.Title)
		assert.Equal(t, "old", post.Content)
	})

	t.Run("anonymous is denied", func(t *testing.T) {
		post := &models.Post{ID: 7, Title: "old", Content: "old", AuthorID: 3, Author: *owner}
		svc := NewPostService(ownedPostRepo(post))

		_, err := svc.UpdatePost(context.Background(), nil, 7, "new", "body")
		require.Error(t, err)
		assert.Equal(t, models.CodeUnauthenticated, models.CodeOf(err))
		assert.Equal(t, "old", post.Title)
	})

	t.Run("missing post", func(t *testing.T) {
		post := &models.Post{ID: 7, AuthorID: 3, Author: *owner}
		svc := NewPostService(ownedPostRepo(post))

		_, err := svc.UpdatePost(context.Background(), owner, 99, "new", "body")
		assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
	})
}

func TestDeletePostOwnership(t *testing.T) {
	owner := &models.User{ID: 3, Username: "ada"}
	post := &models.Post{ID: 7, AuthorID: 3, Author: *owner}

	deleted := []uint{}
	repo := ownedPostRepo(post)
	repo.deleteFn = func(_ context.Context, id uint) error {
		deleted = append(deleted, id)
		return nil
	}
	svc := NewPostService(repo)
	ctx := context.Background()

	err := svc.DeletePost(ctx, &models.User{ID: 4, Username: "brian"}, 7)
	require.Error(t, err)
	assert.Equal(t, models.CodeUnauthorized, models.CodeOf(err))
	assert.Empty(t, deleted)

	require.NoError(t, svc.DeletePost(ctx, owner, 7))
	assert.Equal(t, []uint{7}, deleted)
}

func TestLengthSummary(t *testing.T) {
	svc := NewPostService(&postRepoStub{
		lengthsFn: func(context.Context) ([]int, error) { return []int{3, 5, 7, 9}, nil },
	})

	summary, ok, err := svc.LengthSummary(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 6.0, summary.Mean)
	assert.Equal(t, 6.0, summary.Median)
	assert.Equal(t, 3, summary.Min)
	assert.Equal(t, 9, summary.Max)
	assert.Equal(t, 24, summary.Sum)
}

func TestLengthSummaryNoPosts(t *testing.T) {
	svc := NewPostService(&postRepoStub{
		lengthsFn: func(context.Context) ([]int, error) { return nil, nil },
	})

	_, ok, err := svc.LengthSummary(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}
