package repository

import (
	"context"
	"errors"
	"fmt"

	"exptracker/database"
	"exptracker/models"

	"github.com/jackc/pgx/v5"
)

// UserRepository implements the UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

const userColumns = `discord_id, username, first_name, last_name, unspent_stars, created_at, updated_at`

// GetByDiscordID retrieves a user by their Discord ID
func (r *UserRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE discord_id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, discordID))
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", discordID, err)
	}
	return user, nil
}

// GetByDiscordIDForUpdate retrieves a user and locks the row until the transaction ends
func (r *UserRepository) GetByDiscordIDForUpdate(ctx context.Context, discordID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE discord_id = $1 FOR UPDATE`

	user, err := scanUser(r.q.QueryRow(ctx, query, discordID))
	if err != nil {
		return nil, fmt.Errorf("failed to lock user %d: %w", discordID, err)
	}
	return user, nil
}

// Create creates a new user with the given starting pool.
// It returns nil without an error when a user with discordID already exists.
func (r *UserRepository) Create(ctx context.Context, discordID int64, profile models.Profile, initialStars int64) (*models.User, error) {
	query := `
		INSERT INTO users (discord_id, username, first_name, last_name, unspent_stars)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (discord_id) DO NOTHING
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query,
		discordID,
		profile.Username,
		profile.FirstName,
		profile.LastName,
		initialStars,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create user %d: %w", discordID, err)
	}
	return user, nil
}

// AddUnspentStars adds amount to the user's pool and returns the new pool.
// The CHECK constraint rejects updates that would make the pool negative.
func (r *UserRepository) AddUnspentStars(ctx context.Context, discordID int64, amount int64) (int64, error) {
	query := `
		UPDATE users
		SET unspent_stars = unspent_stars + $1, updated_at = NOW()
		WHERE discord_id = $2
		RETURNING unspent_stars
	`

	var unspent int64
	err := r.q.QueryRow(ctx, query, amount, discordID).Scan(&unspent)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("user with discord ID %d not found", discordID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to add %d unspent stars for user %d: %w", amount, discordID, err)
	}
	return unspent, nil
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.DiscordID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.UnspentStars,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
