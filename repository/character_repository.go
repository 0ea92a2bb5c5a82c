package repository

import (
	"context"
	"errors"
	"fmt"

	"exptracker/database"
	"exptracker/models"

	"github.com/jackc/pgx/v5"
)

// CharacterRepository implements the CharacterRepository interface
type CharacterRepository struct {
	q queryable
}

// NewCharacterRepository creates a new character repository
func NewCharacterRepository(db *database.DB) *CharacterRepository {
	return &CharacterRepository{q: db.Pool}
}

// newCharacterRepositoryWithTx creates a new character repository with a transaction
func newCharacterRepositoryWithTx(tx queryable) *CharacterRepository {
	return &CharacterRepository{q: tx}
}

const characterColumns = `id, discord_id, name, stars, dead, created_at, updated_at`

// GetByID retrieves a character owned by discordID
func (r *CharacterRepository) GetByID(ctx context.Context, discordID, characterID int64) (*models.Character, error) {
	query := `SELECT ` + characterColumns + ` FROM characters WHERE id = $1 AND discord_id = $2`

	character, err := scanCharacter(r.q.QueryRow(ctx, query, characterID, discordID))
	if err != nil {
		return nil, fmt.Errorf("failed to get character %d: %w", characterID, err)
	}
	return character, nil
}

// GetByIDForUpdate retrieves a character owned by discordID and locks the row
func (r *CharacterRepository) GetByIDForUpdate(ctx context.Context, discordID, characterID int64) (*models.Character, error) {
	query := `SELECT ` + characterColumns + ` FROM characters WHERE id = $1 AND discord_id = $2 FOR UPDATE`

	character, err := scanCharacter(r.q.QueryRow(ctx, query, characterID, discordID))
	if err != nil {
		return nil, fmt.Errorf("failed to lock character %d: %w", characterID, err)
	}
	return character, nil
}

// ListByUser returns the user's characters ordered by stars, highest first
func (r *CharacterRepository) ListByUser(ctx context.Context, discordID int64) ([]*models.Character, error) {
	query := `
		SELECT ` + characterColumns + `
		FROM characters
		WHERE discord_id = $1
		ORDER BY stars DESC, id ASC
	`

	rows, err := r.q.Query(ctx, query, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters for user %d: %w", discordID, err)
	}
	defer rows.Close()

	characters := make([]*models.Character, 0)
	for rows.Next() {
		character, err := scanCharacter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan character: %w", err)
		}
		characters = append(characters, character)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating characters: %w", err)
	}

	return characters, nil
}

// Create inserts a new character
func (r *CharacterRepository) Create(ctx context.Context, character *models.Character) error {
	query := `
		INSERT INTO characters (discord_id, name, stars, dead)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		character.DiscordID,
		character.Name,
		character.Stars,
		character.Dead,
	).Scan(&character.ID, &character.CreatedAt, &character.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create character for user %d: %w", character.DiscordID, err)
	}
	return nil
}

// AddStars adds amount to a character's stars and returns the new total
func (r *CharacterRepository) AddStars(ctx context.Context, characterID int64, amount int64) (int64, error) {
	query := `
		UPDATE characters
		SET stars = stars + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING stars
	`

	var stars int64
	err := r.q.QueryRow(ctx, query, amount, characterID).Scan(&stars)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("character with ID %d not found", characterID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to add %d stars to character %d: %w", amount, characterID, err)
	}
	return stars, nil
}

// Update writes the mutable fields of a character
func (r *CharacterRepository) Update(ctx context.Context, character *models.Character) error {
	query := `
		UPDATE characters
		SET name = $1, stars = $2, dead = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err := r.q.QueryRow(ctx, query,
		character.Name,
		character.Stars,
		character.Dead,
		character.ID,
	).Scan(&character.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("character with ID %d not found", character.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update character %d: %w", character.ID, err)
	}
	return nil
}

// Delete removes a character. Log entries referencing it keep existing with a null character.
func (r *CharacterRepository) Delete(ctx context.Context, characterID int64) error {
	result, err := r.q.Exec(ctx, `DELETE FROM characters WHERE id = $1`, characterID)
	if err != nil {
		return fmt.Errorf("failed to delete character %d: %w", characterID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("character with ID %d not found", characterID)
	}
	return nil
}

func scanCharacter(row pgx.Row) (*models.Character, error) {
	var character models.Character
	err := row.Scan(
		&character.ID,
		&character.DiscordID,
		&character.Name,
		&character.Stars,
		&character.Dead,
		&character.CreatedAt,
		&character.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &character, nil
}
