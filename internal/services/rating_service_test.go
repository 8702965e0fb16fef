package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mortan11/app-prompts/internal/database"
	"github.com/mortan11/app-prompts/internal/models"
)

func createUser(username string) models.User {
	user := models.User{Username: username, Email: username + "@example.com", Password: "x"}
	database.DB.Create(&user)
	return user
}

func createPrompt(userID uint, title string) models.Prompt {
	prompt := models.Prompt{
		Title:      title,
		Template:   "say {{thing}}",
		FieldTypes: models.StringMap{},
		UserID:     userID,
	}
	database.DB.Create(&prompt)
	return prompt
}

func createInteraction(userID, promptID uint, rating *int, at time.Time) models.Interaction {
	interaction := models.Interaction{
		CreatedAt: at,
		UserID:    userID,
		PromptID:  promptID,
		InputData: models.StringMap{"thing": "hi"},
		Result:    "hello",
		Rating:    rating,
	}
	database.DB.Create(&interaction)
	return interaction
}

func reloadPrompt(t *testing.T, id uint) models.Prompt {
	t.Helper()
	var prompt models.Prompt
	assert.NoError(t, database.DB.First(&prompt, id).Error)
	return prompt
}

func reloadInteraction(t *testing.T, id uint) models.Interaction {
	t.Helper()
	var interaction models.Interaction
	assert.NoError(t, database.DB.First(&interaction, id).Error)
	return interaction
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestRatePromptFirstRating(t *testing.T) {
	setupTestDB()

	user := createUser("rater")
	prompt := createPrompt(user.ID, "P")
	interaction := createInteraction(user.ID, prompt.ID, nil, time.Now())

	assert.NoError(t, RatePrompt(user.ID, prompt.ID, "4", nil))

	p := reloadPrompt(t, prompt.ID)
	assert.Equal(t, 1, p.RatingCount)
	if assert.NotNil(t, p.Rating) {
		assert.InDelta(t, 4.0, *p.Rating, 1e-9)
	}
	assert.Equal(t, intPtr(4), reloadInteraction(t, interaction.ID).Rating)
}

func TestRatePromptAggregateScenario(t *testing.T) {
	setupTestDB()

	user := createUser("rater")
	prompt := createPrompt(user.ID, "P")

	// Aggregate at 4.0 over two contributors, one of them interaction i2
	other := createUser("other")
	createInteraction(other.ID, prompt.ID, intPtr(4), time.Now().Add(-3*time.Hour))
	i2 := createInteraction(user.ID, prompt.ID, intPtr(4), time.Now().Add(-2*time.Hour))
	i1 := createInteraction(user.ID, prompt.ID, nil, time.Now().Add(-time.Hour))
	database.DB.Model(&models.Prompt{}).Where("id = ?", prompt.ID).
		Updates(map[string]interface{}{"rating": 4.0, "rating_count": 2})

	// Unrated i1 submits 2: a fresh contributor joins the mean
	assert.NoError(t, RatePrompt(user.ID, prompt.ID, "2", &i1.ID))
	p := reloadPrompt(t, prompt.ID)
	assert.Equal(t, 3, p.RatingCount)
	assert.InDelta(t, 10.0/3.0, *p.Rating, 1e-9)

	// i2 re-rated from 4 to 1: substitution, count unchanged
	assert.NoError(t, RatePrompt(user.ID, prompt.ID, "1", &i2.ID))
	p = reloadPrompt(t, prompt.ID)
	assert.Equal(t, 3, p.RatingCount)
	assert.InDelta(t, 7.0/3.0, *p.Rating, 1e-9)
}

func TestRatePromptClamping(t *testing.T) {
	setupTestDB()

	user := createUser("rater")
	prompt := createPrompt(user.ID, "P")
	low := createInteraction(user.ID, prompt.ID, nil, time.Now().Add(-time.Hour))

	assert.NoError(t, RatePrompt(user.ID, prompt.ID, "0", &low.ID))
	assert.Equal(t, intPtr(1), reloadInteraction(t, low.ID).Rating)

	high := createInteraction(user.ID, prompt.ID, nil, time.Now())
	assert.NoError(t, RatePrompt(user.ID, prompt.ID, "6", &high.ID))
	assert.Equal(t, intPtr(5), reloadInteraction(t, high.ID).Rating)

	p := reloadPrompt(t, prompt.ID)
	assert.Equal(t, 2, p.RatingCount)
	assert.InDelta(t, 3.0, *p.Rating, 1e-9)
}

func TestRatePromptBlankAndMalformedAreNoOps(t *testing.T) {
	setupTestDB()

	user := createUser("rater")
	prompt := createPrompt(user.ID, "P")
	interaction := createInteraction(user.ID, prompt.ID, nil, time.Now())

	assert.NoError(t, RatePrompt(user.ID, prompt.ID, "", nil))
	assert.NoError(t, RatePrompt(user.ID, prompt.ID, "   ", nil))
	assert.NoError(t, RatePrompt(user.ID, prompt.ID, "great", nil))

	p := reloadPrompt(t, prompt.ID)
	assert.Nil(t, p.Rating)
	assert.Equal(t, 0, p.RatingCount)
	assert.Nil(t, reloadInteraction(t, interaction.ID).Rating)
}

func TestRatePromptWithoutInteractionsIsNoOp(t *testing.T) {
	setupTestDB()

	user := createUser("rater")
	prompt := createPrompt(user.ID, "P")

	assert.NoError(t, RatePrompt(user.ID, prompt.ID, "5", nil))

	p := reloadPrompt(t, prompt.ID)
	assert.Nil(t, p.Rating)
	assert.Equal(t, 0, p.RatingCount)
}

func TestRatePromptUnknownPrompt(t *testing.T) {
	setupTestDB()

	user := createUser("rater")
	assert.ErrorIs(t, RatePrompt(user.ID, 999, "3", nil), ErrPromptNotFound)
}

func TestRatePromptFallsBackToLatestInteraction(t *testing.T) {
	setupTestDB()

	user := createUser("rater")
	prompt := createPrompt(user.ID, "P")
	older := createInteraction(user.ID, prompt.ID, nil, time.Now().Add(-time.Hour))
	latest := createInteraction(user.ID, prompt.ID, nil, time.Now())

	assert.NoError(t, RatePrompt(user.ID, prompt.ID, "5", nil))

	assert.Nil(t, reloadInteraction(t, older.ID).Rating)
	assert.Equal(t, intPtr(5), reloadInteraction(t, latest.ID).Rating)
}

func TestRatePromptForeignInteractionIDFallsBack(t *testing.T) {
	setupTestDB()

	user := createUser("rater")
	other := createUser("other")
	prompt := createPrompt(user.ID, "P")

	foreign := createInteraction(other.ID, prompt.ID, nil, time.Now())
	mine := createInteraction(user.ID, prompt.ID, nil, time.Now().Add(-time.Minute))

	// An id that belongs to another user is ignored in favor of the
	// caller's latest interaction.
	assert.NoError(t, RatePrompt(user.ID, prompt.ID, "3", &foreign.ID))

	assert.Nil(t, reloadInteraction(t, foreign.ID).Rating)
	assert.Equal(t, intPtr(3), reloadInteraction(t, mine.ID).Rating)
}

func TestRateInteraction(t *testing.T) {
	setupTestDB()

	user := createUser("rater")
	prompt := createPrompt(user.ID, "P")
	interaction := createInteraction(user.ID, prompt.ID, nil, time.Now())

	summary, err := RateInteraction(user.ID, interaction.ID, "4")
	assert.NoError(t, err)
	assert.Equal(t, interaction.ID, summary.InteractionID)
	assert.Equal(t, 4, summary.Rating)
	assert.Equal(t, 1, summary.PromptCount)
	assert.Equal(t, floatPtr(4.0), summary.PromptAvg)

	// Re-rating substitutes without changing the count
	summary, err = RateInteraction(user.ID, interaction.ID, "1")
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.PromptCount)
	assert.Equal(t, floatPtr(1.0), summary.PromptAvg)
}

func TestRateInteractionRoundsAverage(t *testing.T) {
	setupTestDB()

	user := createUser("rater")
	prompt := createPrompt(user.ID, "P")
	first := createInteraction(user.ID, prompt.ID, nil, time.Now().Add(-2*time.Hour))
	second := createInteraction(user.ID, prompt.ID, nil, time.Now().Add(-time.Hour))
	third := createInteraction(user.ID, prompt.ID, nil, time.Now())

	_, err := RateInteraction(user.ID, first.ID, "5")
	assert.NoError(t, err)
	_, err = RateInteraction(user.ID, second.ID, "4")
	assert.NoError(t, err)

	summary, err := RateInteraction(user.ID, third.ID, "1")
	assert.NoError(t, err)
	assert.Equal(t, 3, summary.PromptCount)
	assert.Equal(t, floatPtr(3.33), summary.PromptAvg) // 10/3 rounded to 2 decimals
}

func TestRateInteractionSeesCommittedRating(t *testing.T) {
	setupTestDB()

	user := createUser("rater")
	prompt := createPrompt(user.ID, "P")
	interaction := createInteraction(user.ID, prompt.ID, nil, time.Now())

	// Another writer already rated this interaction and committed its
	// aggregate. Rating it again must substitute, never join the mean as a
	// second contributor.
	assert.NoError(t, database.DB.Model(&models.Interaction{}).
		Where("id = ?", interaction.ID).Update("rating", 3).Error)
	assert.NoError(t, database.DB.Model(&models.Prompt{}).
		Where("id = ?", prompt.ID).
		UpdateColumns(map[string]interface{}{"rating": 3.0, "rating_count": 1}).Error)

	summary, err := RateInteraction(user.ID, interaction.ID, "5")
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.PromptCount)
	assert.Equal(t, floatPtr(5.0), summary.PromptAvg)

	p := reloadPrompt(t, prompt.ID)
	assert.Equal(t, 1, p.RatingCount)
	assert.InDelta(t, 5.0, *p.Rating, 1e-9)
	assert.Equal(t, intPtr(5), reloadInteraction(t, interaction.ID).Rating)
}

func TestRateInteractionErrors(t *testing.T) {
	setupTestDB()

	user := createUser("rater")
	other := createUser("other")
	prompt := createPrompt(user.ID, "P")
	interaction := createInteraction(user.ID, prompt.ID, nil, time.Now())

	_, err := RateInteraction(user.ID, interaction.ID, "")
	assert.ErrorIs(t, err, ErrRatingRequired)

	_, err = RateInteraction(user.ID, interaction.ID, "abc")
	assert.ErrorIs(t, err, ErrRatingInvalid)

	_, err = RateInteraction(other.ID, interaction.ID, "3")
	assert.ErrorIs(t, err, ErrInteractionNotFound)

	_, err = RateInteraction(user.ID, 999, "3")
	assert.ErrorIs(t, err, ErrInteractionNotFound)

	// None of the failures touched the aggregate
	p := reloadPrompt(t, prompt.ID)
	assert.Nil(t, p.Rating)
	assert.Equal(t, 0, p.RatingCount)
}

func TestRatingCountTracksRatedInteractions(t *testing.T) {
	setupTestDB()

	user := createUser("rater")
	prompt := createPrompt(user.ID, "P")

	interactions := make([]models.Interaction, 4)
	for i := range interactions {
		interactions[i] = createInteraction(user.ID, prompt.ID, nil, time.Now().Add(time.Duration(i)*time.Minute))
	}

	ratings := []string{"1", "5", "3", "4", "2", "5"}
	targets := []int{0, 1, 0, 2, 1, 3}
	for i, r := range ratings {
		_, err := RateInteraction(user.ID, interactions[targets[i]].ID, r)
		assert.NoError(t, err)
	}

	var rated []models.Interaction
	database.DB.Where("prompt_id = ? AND rating IS NOT NULL", prompt.ID).Find(&rated)

	sum := 0
	for _, i := range rated {
		sum += *i.Rating
	}

	p := reloadPrompt(t, prompt.ID)
	assert.Equal(t, len(rated), p.RatingCount)
	assert.InDelta(t, float64(sum)/float64(len(rated)), *p.Rating, 1e-9)
}
