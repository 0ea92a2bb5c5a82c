package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"exptracker/models"
	"exptracker/progression"
)

func TestFormatStars(t *testing.T) {
	tests := []struct {
		name     string
		stars    int64
		expected string
	}{
		{"zero", 0, "0"},
		{"small", 999, "999"},
		{"thousands", 1000, "1,000"},
		{"millions", 1234567, "1,234,567"},
		{"negative", -1500, "-1,500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatStars(tt.stars))
		})
	}
}

func TestFormatSignedStars(t *testing.T) {
	assert.Equal(t, "+5", FormatSignedStars(5))
	assert.Equal(t, "-5", FormatSignedStars(-5))
	assert.Equal(t, "0", FormatSignedStars(0))
}

func TestFormatProgress(t *testing.T) {
	assert.Equal(t, "Level 2 · 4/8 banners · 0/1 ⭐", FormatProgress(progression.StarsToLevel(12)))
	assert.Equal(t, "Level 1 · 0/8 banners · 0/1 ⭐", FormatProgress(progression.StarsToLevel(0)))
	assert.Equal(t, "Level 20 (max)", FormatProgress(progression.StarsToLevel(progression.LevelToStars(20)+100)))
}

func TestFormatCharacterLine(t *testing.T) {
	line := FormatCharacterLine(&models.Character{ID: 3, Name: "Gimli", Stars: 12, Dead: true})
	assert.Contains(t, line, "`#3`")
	assert.Contains(t, line, "**Gimli**")
	assert.Contains(t, line, "💀")
	assert.Contains(t, line, "Level 2")
}

func TestFormatLogEntry(t *testing.T) {
	created := time.Unix(1700000000, 0)
	characterID := int64(7)
	reason := "boss fight"

	spent := FormatLogEntry(&models.LogEntry{
		CharacterID: &characterID,
		Type:        models.LogTypeStarsSpent,
		Value:       models.StarsChange{Amount: 5, Reason: &reason},
		CreatedAt:   created,
	})
	assert.Equal(t, "<t:1700000000:R> Spent +5 ⭐ → `#7` (boss fight)", spent)

	added := FormatLogEntry(&models.LogEntry{
		Type:      models.LogTypeStarsAdded,
		Value:     models.StarsChange{Amount: -3},
		CreatedAt: created,
	})
	assert.Equal(t, "<t:1700000000:R> Pool -3 ⭐", added)

	deleted := FormatLogEntry(&models.LogEntry{
		Type:      models.LogTypeCharacterDeleted,
		Value:     models.CharacterSnapshot{ID: 7, Name: "Boromir", Stars: 40, Dead: true},
		CreatedAt: created,
	})
	assert.Equal(t, "<t:1700000000:R> Deleted **Boromir** `#7` at 40 ⭐", deleted)
}

func TestFormatDiscordTimestamp(t *testing.T) {
	assert.Equal(t, "<t:1700000000:f>", FormatDiscordTimestamp(time.Unix(1700000000, 0), "f"))
}
