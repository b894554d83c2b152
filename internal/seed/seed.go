// Package seed populates the database with generated users and posts for
// local development.
package seed

import (
	"fmt"
	"log/slog"

	"inkwell/internal/credentials"
	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// DefaultPassword is the plaintext password every seeded user logs in with.
const DefaultPassword = "password"

// Options controls how much data Run generates.
type Options struct {
	Users int
	Posts int
	Clean bool
}

// Run fills the database with generated users and posts. With Clean set it
// wipes both tables first. Passwords are stored through the configured
// credential scheme, so seeded users can log in normally.
func Run(db *gorm.DB, scheme credentials.Scheme, opts Options) error {
	if opts.Users <= 0 {
		opts.Users = 5
	}
	if opts.Posts <= 0 {
		opts.Posts = 20
	}

	if opts.Clean {
		if err := db.Exec("DELETE FROM posts").Error; err != nil {
			return fmt.Errorf("failed to clean posts: %w", err)
		}
		if err := db.Exec("DELETE FROM users").Error; err != nil {
			return fmt.Errorf("failed to clean users: %w", err)
		}
	}

	factory := NewFactory()

	stored, err := scheme.Hash(DefaultPassword)
	if err != nil {
		return fmt.Errorf("failed to prepare seed password: %w", err)
	}

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user := factory.User(stored)
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create seed user: %w", err)
		}
		users = append(users, user)
	}

	for i := 0; i < opts.Posts; i++ {
		author := users[i%len(users)]
		post := factory.Post(author.ID)
		if err := db.Create(post).Error; err != nil {
			return fmt.Errorf("failed to create seed post: %w", err)
		}
	}

	middleware.Logger.Info("Seed complete",
		slog.Int("users", opts.Users),
		slog.Int("posts", opts.Posts))
	return nil
}
