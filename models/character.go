package models

import (
	"time"

	"exptracker/progression"
)

// Character represents a player character with its cumulative star count
type Character struct {
	ID        int64     `db:"id"`
	DiscordID int64     `db:"discord_id"`
	Name      string    `db:"name"`
	Stars     int64     `db:"stars"`
	Dead      bool      `db:"dead"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Progress derives the character's level and banners from its stars
func (c *Character) Progress() progression.Progress {
	return progression.StarsToLevel(c.Stars)
}

// Snapshot captures the character state written to the audit log
func (c *Character) Snapshot() CharacterSnapshot {
	return CharacterSnapshot{
		ID:    c.ID,
		Name:  c.Name,
		Stars: c.Stars,
		Dead:  c.Dead,
	}
}

// CharacterUpdate is a partial update of a character. Nil fields are left untouched.
// Reason only annotates the log entry of a star change and is never stored on the character.
type CharacterUpdate struct {
	Name   *string
	Stars  *int64
	Dead   *bool
	Reason *string
}
