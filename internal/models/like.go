package models

import "time"

// Like records that a user liked a post. The same row backs both the
// post's liking set and the user's liked-posts set.
// The combination of UserID and PostID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SavedPost records that a user saved a post for later. The capability is
// persisted but not exposed by any route.
type SavedPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_save_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_save_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
