package models

import "time"

// Prompt represents a reusable prompt template with {{name}} placeholders.
// Rating and RatingCount are derived state owned by the rating service:
// Rating is nil exactly when RatingCount is zero.
type Prompt struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `gorm:"index;not null" json:"title"`
	Description string    `json:"description"`
	Template    string    `gorm:"type:text;not null" json:"template"`
	FieldTypes  StringMap `gorm:"type:jsonb;not null;default:'{}'" json:"field_types" swaggertype:"object"`
	Rating      *float64  `json:"rating"`
	RatingCount int       `gorm:"not null;default:0" json:"rating_count"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
}
