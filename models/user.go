package models

import (
	"time"
)

// User represents a player with a pool of unspent stars
type User struct {
	DiscordID    int64     `db:"discord_id"`
	Username     string    `db:"username"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	UnspentStars int64     `db:"unspent_stars"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Profile holds the identity fields supplied when a user is first seen
type Profile struct {
	Username  string
	FirstName string
	LastName  string
}

// CanAfford checks if the pool holds at least amount stars
func (u *User) CanAfford(amount int64) bool {
	return u.UnspentStars >= amount
}

// DisplayName returns the full name if known, falling back to the username
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}
