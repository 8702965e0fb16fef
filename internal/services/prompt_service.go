package services

import (
	"errors"
	"strings"

	"github.com/mortan11/app-prompts/internal/database"
	"github.com/mortan11/app-prompts/internal/models"
)

var ErrPromptNotFound = errors.New("prompt not found")

// Listing sort keys. NULLS LAST is emulated with a leading "<col> IS NULL"
// term so it holds on both postgres and sqlite, in either direction.
const (
	SortName        = "name"
	SortCreatedDesc = "created_desc"
	SortUpdatedDesc = "updated_desc"
	SortRatingDesc  = "rating_desc"
	SortRatingAsc   = "rating_asc"
)

// CreatePrompt creates a prompt for a user. The declared field types must
// name known types; malformed entries are rejected, not dropped.
func CreatePrompt(userID uint, title, description, template string, fieldTypes models.StringMap) (*models.Prompt, error) {
	if fieldTypes == nil {
		fieldTypes = models.StringMap{}
	}
	if err := models.ValidateFieldTypes(fieldTypes); err != nil {
		return nil, err
	}

	prompt := &models.Prompt{
		Title:       title,
		Description: description,
		Template:    template,
		FieldTypes:  fieldTypes,
		UserID:      userID,
	}

	if err := database.DB.Create(prompt).Error; err != nil {
		return nil, err
	}

	return prompt, nil
}

// GetPrompt retrieves a prompt owned by the user. Prompts of other users
// are reported as not found.
func GetPrompt(id, userID uint) (*models.Prompt, error) {
	var prompt models.Prompt
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&prompt).Error; err != nil {
		return nil, ErrPromptNotFound
	}
	return &prompt, nil
}

// UpdatePrompt updates an existing prompt owned by the user.
func UpdatePrompt(id, userID uint, title, description, template string, fieldTypes models.StringMap) (*models.Prompt, error) {
	prompt, err := GetPrompt(id, userID)
	if err != nil {
		return nil, err
	}

	if fieldTypes == nil {
		fieldTypes = models.StringMap{}
	}
	if err := models.ValidateFieldTypes(fieldTypes); err != nil {
		return nil, err
	}

	prompt.Title = title
	prompt.Description = description
	prompt.Template = template
	prompt.FieldTypes = fieldTypes

	if err := database.DB.Save(prompt).Error; err != nil {
		return nil, err
	}

	return prompt, nil
}

// DeletePrompt deletes a prompt owned by the user. Interactions keep their
// weak reference and survive.
func DeletePrompt(id, userID uint) error {
	result := database.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Prompt{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPromptNotFound
	}
	return nil
}

// ListPrompts retrieves the user's prompts, optionally filtered by a
// case-insensitive title substring, ordered by the given sort key.
func ListPrompts(userID uint, sort, search string) ([]models.Prompt, error) {
	query := database.DB.Where("user_id = ?", userID)

	if search = strings.TrimSpace(search); search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	switch sort {
	case SortName:
		query = query.Order("title asc")
	case SortCreatedDesc:
		query = query.Order("created_at IS NULL, created_at desc")
	case SortRatingDesc:
		query = query.Order("rating IS NULL, rating desc")
	case SortRatingAsc:
		query = query.Order("rating IS NULL, rating asc")
	default: // SortUpdatedDesc
		query = query.Order("updated_at IS NULL, updated_at desc")
	}

	var prompts []models.Prompt
	if err := query.Find(&prompts).Error; err != nil {
		return nil, err
	}
	return prompts, nil
}
