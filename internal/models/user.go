// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// DefaultProfilePicture is used when a user has not uploaded an avatar.
const DefaultProfilePicture = "https://placehold.co/400"

// User represents a registered Draftly author.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email,omitempty"`
	Password       string    `gorm:"not null" json:"-"`
	ProfilePicture string    `gorm:"not null" json:"profilePicture"`
	Bio            string    `json:"bio,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Posts          []Post    `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}

// Identity is the public-facing subset of a User returned to clients after
// register/login. The password hash is never part of any serialized view.
type Identity struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profilePicture"`
}

// Identity projects the user's public fields.
func (u *User) Identity() Identity {
	return Identity{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
	}
}
