package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mortan11/app-prompts/internal/database"
	"github.com/mortan11/app-prompts/internal/models"
)

const historyTimeLayout = "2006-01-02 15:04"

// CSVHeader is the export header row. The Spanish column names are part of
// the export contract.
var CSVHeader = []string{"Fecha", "Prompt", "Entradas", "Resultado", "Puntuación"}

// ListInteractions returns the user's interactions newest-first, each with
// its prompt preloaded so the title is resolvable.
func ListInteractions(userID uint) ([]models.Interaction, error) {
	var interactions []models.Interaction
	err := database.DB.Preload("Prompt").
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&interactions).Error
	if err != nil {
		return nil, err
	}
	return interactions, nil
}

// ExportHistoryCSV writes the user's interaction history as CSV: one row
// per interaction with timestamp, prompt title, the submitted inputs joined
// as "key: value" pairs, the result with newlines collapsed to spaces, and
// the rating or "-" when absent.
func ExportHistoryCSV(w io.Writer, userID uint) error {
	interactions, err := ListInteractions(userID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return err
	}

	for _, i := range interactions {
		title := "-"
		if i.Prompt != nil {
			title = i.Prompt.Title
		}

		rating := "-"
		if i.Rating != nil {
			rating = strconv.Itoa(*i.Rating)
		}

		row := []string{
			i.CreatedAt.Format(historyTimeLayout),
			title,
			joinInputs(i.InputData),
			strings.ReplaceAll(i.Result, "\n", " "),
			rating,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// DeleteInteractions bulk-deletes the user's interactions. Identifiers that
// do not exist or belong to someone else are silently ignored. It returns
// the number of rows actually deleted.
func DeleteInteractions(userID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := database.DB.Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&models.Interaction{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// joinInputs renders submitted field values as "key: value" pairs joined by
// "; ", in sorted key order so exports are deterministic.
func joinInputs(inputs models.StringMap) string {
	keys := make([]string, 0, len(inputs))
	for k := range inputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s: %s", k, inputs[k]))
	}
	return strings.Join(pairs, "; ")
}
