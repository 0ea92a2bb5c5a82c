package service

import (
	"context"

	"exptracker/events"
	"exptracker/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByDiscordID retrieves a user by their Discord ID, nil if absent
	GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error)

	// GetByDiscordIDForUpdate retrieves and row-locks a user for the rest of the transaction
	GetByDiscordIDForUpdate(ctx context.Context, discordID int64) (*models.User, error)

	// Create creates a new user with the given starting pool, nil if the user already exists
	Create(ctx context.Context, discordID int64, profile models.Profile, initialStars int64) (*models.User, error)

	// AddUnspentStars adds amount (possibly negative) to the pool and returns the new pool
	AddUnspentStars(ctx context.Context, discordID int64, amount int64) (int64, error)
}

// CharacterRepository defines the interface for character data access.
// Lookups are scoped to the owner; a character of another user is reported as absent.
type CharacterRepository interface {
	// GetByID retrieves a character owned by discordID, nil if absent
	GetByID(ctx context.Context, discordID, characterID int64) (*models.Character, error)

	// GetByIDForUpdate retrieves and row-locks a character owned by discordID
	GetByIDForUpdate(ctx context.Context, discordID, characterID int64) (*models.Character, error)

	// ListByUser returns the user's characters, most stars first
	ListByUser(ctx context.Context, discordID int64) ([]*models.Character, error)

	// Create inserts a character and fills in its ID and timestamps
	Create(ctx context.Context, character *models.Character) error

	// AddStars adds amount (possibly negative) to a character and returns the new star count
	AddStars(ctx context.Context, characterID int64, amount int64) (int64, error)

	// Update writes name, stars and dead flag of an existing character
	Update(ctx context.Context, character *models.Character) error

	// Delete removes a character
	Delete(ctx context.Context, characterID int64) error
}

// LogEntryRepository defines the interface for the append-only audit log
type LogEntryRepository interface {
	// Append stores a new entry and fills in its ID and creation time
	Append(ctx context.Context, entry *models.LogEntry) error

	// ListByUser returns the user's entries, newest first. limit <= 0 returns all entries.
	ListByUser(ctx context.Context, discordID int64, limit int) ([]*models.LogEntry, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	CharacterRepository() CharacterRepository
	LogEntryRepository() LogEntryRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}

// UserService defines the interface for user operations
type UserService interface {
	// GetOrCreateUser retrieves an existing user or creates one with the starting pool
	GetOrCreateUser(ctx context.Context, discordID int64, profile models.Profile) (*models.User, error)

	// GetUserInfo returns the user's profile and pool
	GetUserInfo(ctx context.Context, discordID int64) (*models.User, error)
}

// LedgerService defines the interface for every mutation of stars and characters
type LedgerService interface {
	// SpendStars moves amount stars from the pool to a character. A negative amount refunds.
	SpendStars(ctx context.Context, discordID, characterID int64, amount int64, reason *string) (*models.SpendResult, error)

	// AdjustPoolStars changes the pool by amount
	AdjustPoolStars(ctx context.Context, discordID int64, amount int64, reason *string) (*models.AdjustResult, error)

	// CreateCharacter creates a character with an initial star count outside the pool
	CreateCharacter(ctx context.Context, discordID int64, name string, initialStars int64, dead bool) (*models.Character, error)

	// DeleteCharacter removes a character, logging its final state
	DeleteCharacter(ctx context.Context, discordID, characterID int64) (*models.Character, error)

	// UpdateCharacterStars sets a character's stars directly without touching the pool
	UpdateCharacterStars(ctx context.Context, discordID, characterID int64, newStars int64, reason *string) (*models.Character, error)

	// UpdateCharacter applies a partial update of name, stars and dead flag
	UpdateCharacter(ctx context.Context, discordID, characterID int64, update models.CharacterUpdate) (*models.Character, error)
}

// LogService defines the interface for read-only queries over characters and the audit log
type LogService interface {
	// ListLogs returns all of the user's log entries, newest first
	ListLogs(ctx context.Context, discordID int64) ([]*models.LogEntry, error)

	// ListRecentLogs returns at most limit of the user's newest log entries
	ListRecentLogs(ctx context.Context, discordID int64, limit int) ([]*models.LogEntry, error)

	// ListCharacters returns the user's characters, most stars first
	ListCharacters(ctx context.Context, discordID int64) ([]*models.Character, error)

	// GetCharacter returns one of the user's characters
	GetCharacter(ctx context.Context, discordID, characterID int64) (*models.Character, error)
}
