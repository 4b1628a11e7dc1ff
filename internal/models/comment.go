package models

import (
	"time"
)

// Comment represents a comment on a photo.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	PhotoID   uint      `gorm:"not null;index" json:"photoId"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Photo     Photo     `gorm:"foreignKey:PhotoID" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
