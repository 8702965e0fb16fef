package services

import (
	"context"
	"fmt"

	"github.com/mortan11/app-prompts/internal/database"
	"github.com/mortan11/app-prompts/internal/models"
)

// FieldValidationError carries the per-field messages of a failed input
// validation, in the order the fields were encountered.
type FieldValidationError struct {
	Messages []string
}

func (e *FieldValidationError) Error() string {
	return fmt.Sprintf("input validation failed: %d invalid field(s)", len(e.Messages))
}

// ExecuteResult is the outcome of a successful prompt execution.
type ExecuteResult struct {
	Interaction    *models.Interaction
	FilledTemplate string
}

// ExecutePrompt runs the fill flow: validate the submitted values against
// the prompt's declared field types, substitute them into the template, call
// the completion gateway and record the interaction. A validation failure
// returns *FieldValidationError; a gateway failure records nothing.
func ExecutePrompt(ctx context.Context, userID, promptID uint, values models.StringMap, model string) (*ExecuteResult, error) {
	prompt, err := GetPrompt(promptID, userID)
	if err != nil {
		return nil, err
	}

	if values == nil {
		values = models.StringMap{}
	}

	order := ExtractFields(prompt.Template)
	if msgs := models.ValidateInputs(prompt.FieldTypes, values, order); len(msgs) > 0 {
		return nil, &FieldValidationError{Messages: msgs}
	}

	filled := FillTemplate(prompt.Template, values)

	if Gateway == nil {
		return nil, ErrGatewayNotConfigured
	}
	completion, err := Gateway.Complete(ctx, model, filled)
	if err != nil {
		return nil, err
	}

	interaction := &models.Interaction{
		UserID:    userID,
		PromptID:  prompt.ID,
		InputData: values,
		Result:    completion.Text,
		Usage:     completion.Usage,
	}
	if err := database.DB.Create(interaction).Error; err != nil {
		return nil, err
	}

	return &ExecuteResult{
		Interaction:    interaction,
		FilledTemplate: filled,
	}, nil
}
