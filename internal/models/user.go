// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered author.
//
// The password column holds whatever the configured credential scheme
// produced. The default scheme stores the value verbatim to stay faithful
// to the legacy system; it is not safe for real deployments.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:50;unique;not null" json:"username"`
	Password  string    `gorm:"size:80;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
