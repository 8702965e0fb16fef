package services

import (
	"context"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mortan11/app-prompts/internal/database"
	"github.com/mortan11/app-prompts/internal/models"
)

func setupTestDB() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(&models.User{}, &models.Prompt{}, &models.Interaction{}, &models.PasswordResetToken{})
	err = db.AutoMigrate(&models.User{}, &models.Prompt{}, &models.Interaction{}, &models.PasswordResetToken{})
	if err != nil {
		panic("failed to migrate database")
	}

	database.DB = db
}

func setupTestRedis() *miniredis.Miniredis {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return mr
}

// fakeGateway is a CompletionGateway double for the execute flow.
type fakeGateway struct {
	result     string
	err        error
	calls      int
	lastModel  string
	lastPrompt string
}

func (g *fakeGateway) Complete(_ context.Context, model, prompt string) (*CompletionResult, error) {
	g.calls++
	g.lastModel = model
	g.lastPrompt = prompt
	if g.err != nil {
		return nil, g.err
	}
	return &CompletionResult{Text: g.result}, nil
}
