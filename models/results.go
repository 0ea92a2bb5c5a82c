package models

// SpendResult is the outcome of moving stars between the pool and a character
type SpendResult struct {
	SpentStars int64
	User       *User
	Character  *Character
}

// AdjustResult is the outcome of changing a player's pool directly
type AdjustResult struct {
	AddedStars int64
	User       *User
}
