package seed

import (
	"fmt"
	"strings"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// Factory generates model instances with fake but coherent data.
type Factory struct {
	faker *gofakeit.Faker
	seen  map[string]struct{}
}

// NewFactory builds a Factory with a fixed seed so repeated runs are
// reproducible.
func NewFactory() *Factory {
	return &Factory{
		faker: gofakeit.New(42),
		seen:  map[string]struct{}{},
	}
}

// User generates a user with a unique username and the given stored
// password value.
func (f *Factory) User(storedPassword string) *models.User {
	username := f.uniqueUsername()
	return &models.User{
		Username: username,
		Password: storedPassword,
	}
}

// Post generates a post for the given author.
func (f *Factory) Post(authorID uint) *models.Post {
	title := strings.TrimSuffix(f.faker.Sentence(4), ".")
	if len(title) > 100 {
		title = title[:100]
	}
	return &models.Post{
		Title:    title,
		Content:  f.faker.Paragraph(2, 3, 12, " "),
		AuthorID: authorID,
	}
}

func (f *Factory) uniqueUsername() string {
	for i := 0; ; i++ {
		username := strings.ToLower(f.faker.Username())
		if i > 10 {
			username = fmt.Sprintf("%s%d", username, f.faker.Number(10, 9999))
		}
		if _, dup := f.seen[username]; !dup {
			f.seen[username] = struct{}{}
			return username
		}
	}
}
