package repository

import (
	"context"
	"errors"
	"unicode/utf8"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	// GetByID returns the post with its author preloaded, or a NotFound
	// AppError.
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	// List returns every post, newest first, authors preloaded.
	List(ctx context.Context) ([]*models.Post, error)
	// ListByAuthor returns the posts written by the given user, newest first.
	ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error)
	// Update persists title and content only; created_at and author are
	// never touched.
	Update(ctx context.Context, post *models.Post) error
	// Delete removes the post permanently.
	Delete(ctx context.Context, id uint) error
	// Lengths returns len(title)+len(content) in characters for every
	// stored post.
	Lengths(ctx context.Context) ([]int, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"title":   post.Title,
			"content": post.Content,
		})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", post.ID)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Lengths bulk-reads title and content and counts characters client-side, so
// the result is rune-based regardless of the storage engine's length().
func (r *postRepository) Lengths(ctx context.Context) ([]int, error) {
	var rows []struct {
		Title   string
		Content string
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select("title", "content").
		Find(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	lengths := make([]int, 0, len(rows))
	for _, row := range rows {
		lengths = append(lengths, utf8.RuneCountInString(row.Title)+utf8.RuneCountInString(row.Content))
	}
	return lengths, nil
}
