package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/stats"
)

const maxTitleLen = 100 // characters, matching the column size

// PostService implements post CRUD and the ownership contract. Mutating
// operations evaluate the ownership predicate before touching storage.
// Concurrent edits by the same owner resolve last-write-wins.
type PostService struct {
	posts repository.PostRepository
}

// NewPostService returns a PostService over the given repository.
func NewPostService(posts repository.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// CreatePost persists a new post authored by actor.
func (s *PostService) CreatePost(ctx context.Context, actor *models.User, title, content string) (*models.Post, error) {
	if actor == nil || actor.ID == 0 {
		return nil, models.NewUnauthenticatedError("You must be logged in to create a post")
	}
	if err := validatePostFields(title, content); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    title,
		Content:  content,
		AuthorID: actor.ID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	// Reload so the author association is populated for rendering.
	return s.posts.GetByID(ctx, post.ID)
}

// GetPost returns the post or a NotFound AppError.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// ListPosts returns all posts, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.posts.List(ctx)
}

// ListPostsByAuthor returns the given user's posts, newest first.
func (s *PostService) ListPostsByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error) {
	return s.posts.ListByAuthor(ctx, authorID)
}

// UpdatePost overwrites title and content if actor owns the post. On a
// denied check nothing is written and the caller receives an Unauthorized
// AppError carrying the human-readable reason.
func (s *PostService) UpdatePost(ctx context.Context, actor *models.User, id uint, title, content string) (*models.Post, error) {
	post, err := s.authorizeMutation(ctx, actor, id, "edit")
	if err != nil {
		return nil, err
	}
	if err := validatePostFields(title, content); err != nil {
		return nil, err
	}

	post.Title = title
	post.Content = content
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post permanently if actor owns it.
func (s *PostService) DeletePost(ctx context.Context, actor *models.User, id uint) error {
	post, err := s.authorizeMutation(ctx, actor, id, "delete")
	if err != nil {
		return err
	}
	return s.posts.Delete(ctx, post.ID)
}

// AuthorizeEdit loads the post and runs the ownership check without
// mutating anything. The edit form handler uses it to deny non-owners
// before showing the form.
func (s *PostService) AuthorizeEdit(ctx context.Context, actor *models.User, id uint) (*models.Post, error) {
	return s.authorizeMutation(ctx, actor, id, "edit")
}

func (s *PostService) authorizeMutation(ctx context.Context, actor *models.User, id uint, verb string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor == nil || actor.ID == 0 {
		return nil, models.NewUnauthenticatedError(fmt.Sprintf("You must be logged in to %s a post", verb))
	}
	if !post.OwnedBy(actor) {
		return nil, models.NewUnauthorizedError(
			fmt.Sprintf("Only this post's author (%s) is allowed to %s it", post.Author.Username, verb))
	}
	return post, nil
}

// LengthSummary computes the statistics page payload from a full scan of
// post lengths. The boolean is false when no posts exist.
func (s *PostService) LengthSummary(ctx context.Context) (stats.Summary, bool, error) {
	lengths, err := s.posts.Lengths(ctx)
	if err != nil {
		return stats.Summary{}, false, err
	}
	summary, ok := stats.Summarize(lengths)
	return summary, ok, nil
}

func validatePostFields(title, content string) error {
	if title == "" || content == "" {
		return models.NewValidationError("Title and content are required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return models.NewValidationError(fmt.Sprintf("Title too long (max %d characters)", maxTitleLen))
	}
	return nil
}
