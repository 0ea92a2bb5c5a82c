package testutil

import (
	"time"

	"exptracker/models"
)

// CreateTestUser creates a test user with default values
func CreateTestUser(discordID int64, username string) *models.User {
	now := time.Now()
	return &models.User{
		DiscordID:    discordID,
		Username:     username,
		FirstName:    "Test",
		LastName:     "Player",
		UnspentStars: 10,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CreateTestUserWithStars creates a test user with a specific pool
func CreateTestUserWithStars(discordID int64, username string, unspentStars int64) *models.User {
	user := CreateTestUser(discordID, username)
	user.UnspentStars = unspentStars
	return user
}

// TestProfile returns the profile of a test user
func TestProfile(user *models.User) models.Profile {
	return models.Profile{
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

// CreateTestCharacter creates a test character owned by discordID
func CreateTestCharacter(discordID int64, name string, stars int64) *models.Character {
	now := time.Now()
	return &models.Character{
		DiscordID: discordID,
		Name:      name,
		Stars:     stars,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
