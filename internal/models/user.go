// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Role identifies the privilege level of a user account.
type Role int

const (
	// RoleUser is the default role for ordinary accounts.
	RoleUser Role = 1
	// RoleAdmin grants moderation privileges.
	RoleAdmin Role = 2
)

// User represents a registered account in the Darkroom application.
// Password holds the bcrypt hash and is never serialized.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName    string    `gorm:"not null" json:"firstName"`
	LastName     string    `gorm:"not null" json:"lastName"`
	DateOfBirth  time.Time `gorm:"type:date" json:"dateOfBirth"`
	Password     string    `gorm:"not null" json:"-"`
	Bio          string    `json:"bio"`
	ProfileImage string    `json:"profileImage"`
	Role         Role      `gorm:"default:1" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Photos       []Photo   `gorm:"foreignKey:UserID" json:"photos,omitempty"`
}

// PublicUser is the subset of user fields safe to expose to other users.
type PublicUser struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	ProfileImage string `json:"profileImage"`
}

// Public projects the user onto its publicly visible fields.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		ProfileImage: u.ProfileImage,
	}
}
