package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mortan11/app-prompts/internal/database"
)

func TestFindUserByIDCaches(t *testing.T) {
	setupTestDB()
	mr := setupTestRedis()
	defer mr.Close()

	user := createUser("cached")

	found, err := FindUserByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, user.Username, found.Username)
	assert.True(t, mr.Exists(fmt.Sprintf("user:%d", user.ID)))

	// Served from cache even after the row changes underneath
	database.DB.Model(&found).Update("username", "renamed")
	found, err = FindUserByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "cached", found.Username)

	InvalidateUserCache(user.ID)
	found, err = FindUserByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "renamed", found.Username)
}

func TestFindUserByIDNotFound(t *testing.T) {
	setupTestDB()
	mr := setupTestRedis()
	defer mr.Close()

	_, err := FindUserByID(999)
	assert.Error(t, err)
}

func TestTokenDenylist(t *testing.T) {
	setupTestDB()
	mr := setupTestRedis()
	defer mr.Close()

	denied, err := IsDenylisted("some-token")
	assert.NoError(t, err)
	assert.False(t, denied)

	assert.NoError(t, AddToDenylist("some-token", time.Hour))

	denied, err = IsDenylisted("some-token")
	assert.NoError(t, err)
	assert.True(t, denied)

	// Entries expire with the token's remaining lifetime
	mr.FastForward(2 * time.Hour)
	denied, err = IsDenylisted("some-token")
	assert.NoError(t, err)
	assert.False(t, denied)
}
