package models

import (
	"time"
)

// Photo represents an uploaded photograph. The binary lives in object storage;
// URL is stored verbatim at upload time and never re-derived.
//
// Likes and CommentsCount are denormalized counters. They are mutated only
// inside the same transaction as the like/comment row they summarize, so at
// rest each equals the count of rows referencing this photo.
type Photo struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	URL           string `gorm:"not null" json:"url"`
	Title         string `json:"title"`
	UserID        uint   `gorm:"not null;index" json:"userId"`
	User          User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Likes         int    `gorm:"not null;default:0" json:"likes"`
	CommentsCount int    `gorm:"not null;default:0" json:"commentsCount"`
	// IsLiked indicates whether the requesting user liked this photo (computed, not persisted)
	IsLiked   bool      `gorm:"-" json:"isLiked"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
