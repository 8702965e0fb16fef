package services

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mortan11/app-prompts/internal/database"
	"github.com/mortan11/app-prompts/internal/models"
)

var (
	ErrInteractionNotFound = errors.New("interaction not found")
	ErrRatingRequired      = errors.New("rating is required")
	ErrRatingInvalid       = errors.New("rating is invalid")
)

// RatingSummary is the aggregate state after a rating update.
type RatingSummary struct {
	InteractionID uint     `json:"interaction_id"`
	Rating        int      `json:"rating"`
	PromptAvg     *float64 `json:"prompt_avg"`
	PromptCount   int      `json:"prompt_count"`
}

// RatePrompt rates an interaction of the user on the given prompt. When
// interactionID is set it must belong to that user and prompt, otherwise it
// is ignored and the user's most recent interaction on the prompt is rated.
// A blank or non-numeric rating is a no-op, as is a user with no
// interactions on the prompt: the aggregate only ever reflects ratings
// carried by interactions.
func RatePrompt(userID, promptID uint, rating string, interactionID *uint) error {
	value, ok := parseRating(rating)
	if !ok {
		return nil
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		var prompt models.Prompt
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&prompt, promptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPromptNotFound
			}
			return err
		}

		var interaction models.Interaction
		found := false
		if interactionID != nil {
			err := tx.Where("id = ? AND user_id = ? AND prompt_id = ?", *interactionID, userID, promptID).
				First(&interaction).Error
			if err == nil {
				found = true
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		if !found {
			// Fall back to the user's latest interaction on this prompt
			err := tx.Where("user_id = ? AND prompt_id = ?", userID, promptID).
				Order("created_at desc, id desc").
				First(&interaction).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
		}

		return applyRating(tx, &prompt, &interaction, value)
	})
}

// RateInteraction rates one interaction by identifier, for the inline
// history flow. Unlike RatePrompt, a blank or malformed rating is an error.
func RateInteraction(userID, interactionID uint, rating string) (*RatingSummary, error) {
	if strings.TrimSpace(rating) == "" {
		return nil, ErrRatingRequired
	}
	value, ok := parseRating(rating)
	if !ok {
		return nil, ErrRatingInvalid
	}

	var summary *RatingSummary
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var interaction models.Interaction
		if err := tx.Where("id = ? AND user_id = ?", interactionID, userID).
			First(&interaction).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInteractionNotFound
			}
			return err
		}

		var prompt models.Prompt
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&prompt, interaction.PromptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPromptNotFound
			}
			return err
		}

		// The first read only resolved the prompt id. The previous rating
		// feeding the mean must be read under the prompt lock: a rating
		// committed concurrently before the lock is a substitution here,
		// not a fresh contributor.
		if err := tx.First(&interaction, interaction.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInteractionNotFound
			}
			return err
		}

		if err := applyRating(tx, &prompt, &interaction, value); err != nil {
			return err
		}

		summary = &RatingSummary{
			InteractionID: interaction.ID,
			Rating:        value,
			PromptAvg:     roundedRating(prompt.Rating),
			PromptCount:   prompt.RatingCount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// applyRating recomputes the prompt's running mean incrementally and
// persists the interaction's new rating together with the aggregate. A
// previously unrated interaction joins the mean; a re-rated one substitutes
// its old value without changing the count.
func applyRating(tx *gorm.DB, prompt *models.Prompt, interaction *models.Interaction, newRating int) error {
	currentTotal := 0.0
	if prompt.Rating != nil {
		currentTotal = *prompt.Rating * float64(prompt.RatingCount)
	}

	var newTotal float64
	newCount := prompt.RatingCount
	if interaction.Rating != nil {
		newTotal = currentTotal - float64(*interaction.Rating) + float64(newRating)
	} else {
		newTotal = currentTotal + float64(newRating)
		newCount++
	}

	var newMean *float64
	if newCount > 0 {
		mean := newTotal / float64(newCount)
		newMean = &mean
	}

	if err := tx.Model(interaction).Update("rating", newRating).Error; err != nil {
		return err
	}
	// UpdateColumns: a rating change must not bump the prompt's updated_at
	if err := tx.Model(prompt).UpdateColumns(map[string]interface{}{
		"rating":       newMean,
		"rating_count": newCount,
	}).Error; err != nil {
		return err
	}

	rating := newRating
	interaction.Rating = &rating
	prompt.Rating = newMean
	prompt.RatingCount = newCount
	return nil
}

// parseRating parses a raw rating string and clamps it to [1,5]. A blank or
// non-numeric value reports ok=false.
func parseRating(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	if value < 1 {
		value = 1
	}
	if value > 5 {
		value = 5
	}
	return value, true
}

func roundedRating(rating *float64) *float64 {
	if rating == nil {
		return nil
	}
	rounded := math.Round(*rating*100) / 100
	return &rounded
}
