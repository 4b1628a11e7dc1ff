package models

import (
	"time"
)

// Like records that a user liked a photo.
// The (UserID, PhotoID) pair is unique; the existence of a row is the sole
// source of truth for "liked by this user". Rows are hard-deleted on unlike
// so the unique index can arbitrate concurrent toggles.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_photo" json:"userId"`
	PhotoID   uint      `gorm:"not null;uniqueIndex:idx_user_photo" json:"photoId"`
	CreatedAt time.Time `json:"createdAt"`

	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Photo Photo `gorm:"foreignKey:PhotoID" json:"-"`
}
