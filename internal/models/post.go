// Package models contains data structures for the application's domain models.
package models

import "time"

// Post is a blog entry. Every post has exactly one author, set at creation
// and never reassigned. CreatedAt is written once and must survive updates
// untouched; deletes are hard deletes.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:100;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnedBy reports whether actor may mutate the post. An anonymous actor
// (nil) owns nothing.
func (p *Post) OwnedBy(actor *User) bool {
	return actor != nil && actor.ID != 0 && actor.ID == p.AuthorID
}
