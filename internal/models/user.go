package models

import "time"

type User struct {
	BaseModel
	Email        string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
	IsVerified   bool     `gorm:"not null;default:false" json:"is_verified"`
}

// Session is one refresh-token record. Only the SHA-256 of the token is kept.
type Session struct {
	TokenHash string    `gorm:"type:varchar(64);primaryKey"`
	UserID    string    `gorm:"type:varchar(36);not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type PasswordResetToken struct {
	BaseModel
	Token     string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID    string     `gorm:"type:varchar(36);not null;index"`
	ExpiresAt time.Time  `gorm:"not null;index"`
	UsedAt    *time.Time `gorm:"index"`
}
