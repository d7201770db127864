// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"
)

// DefaultFeaturedImage is used when a post is created without an image upload.
const DefaultFeaturedImage = "https://placehold.co/800x400"

// Category classifies a post. Unknown values collapse to CategoryOther.
type Category string

const (
	CategoryTechnology Category = "Technology"
	CategoryLifestyle  Category = "Lifestyle"
	CategoryTravel     Category = "Travel"
	CategoryFood       Category = "Food"
	CategoryEducation  Category = "Education"
	CategoryOther      Category = "Other"
)

// Categories lists every valid post category.
var Categories = []Category{
	CategoryTechnology,
	CategoryLifestyle,
	CategoryTravel,
	CategoryFood,
	CategoryEducation,
	CategoryOther,
}

// ParseCategory maps a client-supplied string onto the category enum,
// defaulting to Other for empty or unrecognized input.
func ParseCategory(s string) Category {
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c
		}
	}
	return CategoryOther
}

// Post represents a blog post in the Draftly application.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content,omitempty"`
	// Expert is the short excerpt; the field name matches the public API.
	Expert        string   `json:"expert,omitempty"`
	AuthorID      uint     `gorm:"not null;index" json:"authorId"`
	Author        *User    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	FeaturedImage string   `gorm:"not null" json:"featuredImage"`
	Tags          []string `gorm:"serializer:json;type:text" json:"tags"`
	Category      Category `gorm:"not null" json:"category"`
	// LikesCount is denormalized and must always equal the number of Like
	// rows for this post; both are mutated in the same transaction.
	LikesCount  int       `gorm:"not null;default:0" json:"likesCount"`
	IsPublished bool      `json:"isPublished"`
	// ReadTime is the estimated minutes to read, ceil(words/200).
	ReadTime  int       `gorm:"not null;default:0" json:"readTime"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
