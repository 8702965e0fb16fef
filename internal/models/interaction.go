package models

import (
	"time"

	"gorm.io/datatypes"
)

// Interaction records one completed execution of a prompt: the submitted
// field values, the generated result, and an optional rating in [1,5].
// CreatedAt is the interaction timestamp used for history ordering.
// The prompt reference is weak: interactions survive prompt deletion.
type Interaction struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`
	PromptID  uint           `gorm:"index;not null" json:"prompt_id"`
	InputData StringMap      `gorm:"type:jsonb;not null;default:'{}'" json:"input_data" swaggertype:"object"`
	Result    string         `gorm:"type:text" json:"result"`
	Rating    *int           `json:"rating"`
	Usage     datatypes.JSON `gorm:"type:jsonb" json:"usage,omitempty" swaggertype:"object"`

	Prompt *Prompt `json:"prompt,omitempty"`
}
