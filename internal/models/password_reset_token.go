package models

import "time"

// PasswordResetToken is a single-use, time-limited token mailed to a user
// who requested a password reset.
type PasswordResetToken struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time
	UserID    uint   `gorm:"index;not null"`
	Token     string `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time
	Used      bool `gorm:"not null;default:false"`
}
