package repository

import (
	"context"
	"fmt"

	"exptracker/database"
	"exptracker/models"
)

// LogEntryRepository implements the LogEntryRepository interface
type LogEntryRepository struct {
	q queryable
}

// NewLogEntryRepository creates a new log entry repository
func NewLogEntryRepository(db *database.DB) *LogEntryRepository {
	return &LogEntryRepository{q: db.Pool}
}

// newLogEntryRepositoryWithTx creates a new log entry repository with a transaction
func newLogEntryRepositoryWithTx(tx queryable) *LogEntryRepository {
	return &LogEntryRepository{q: tx}
}

// Append stores a new log entry. Entries are never updated afterwards.
func (r *LogEntryRepository) Append(ctx context.Context, entry *models.LogEntry) error {
	valueJSON, err := entry.EncodeValue()
	if err != nil {
		return fmt.Errorf("invalid %s log entry: %w", entry.Type, err)
	}

	query := `
		INSERT INTO log_entries (discord_id, character_id, type, value)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err = r.q.QueryRow(ctx, query,
		entry.DiscordID,
		entry.CharacterID,
		string(entry.Type),
		valueJSON,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append %s log entry for user %d: %w", entry.Type, entry.DiscordID, err)
	}

	return nil
}

// ListByUser returns a user's log entries, newest first
func (r *LogEntryRepository) ListByUser(ctx context.Context, discordID int64, limit int) ([]*models.LogEntry, error) {
	query := `
		SELECT id, discord_id, character_id, type, value, created_at
		FROM log_entries
		WHERE discord_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	// LIMIT NULL returns every row
	var limitArg *int
	if limit > 0 {
		limitArg = &limit
	}

	rows, err := r.q.Query(ctx, query, discordID, limitArg)
	if err != nil {
		return nil, fmt.Errorf("failed to list log entries for user %d: %w", discordID, err)
	}
	defer rows.Close()

	entries := make([]*models.LogEntry, 0)
	for rows.Next() {
		var entry models.LogEntry
		var logType string
		var valueJSON []byte

		err := rows.Scan(
			&entry.ID,
			&entry.DiscordID,
			&entry.CharacterID,
			&logType,
			&valueJSON,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}

		entry.Type = models.LogType(logType)
		entry.Value, err = models.DecodeLogValue(entry.Type, valueJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to decode log entry %d: %w", entry.ID, err)
		}

		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating log entries: %w", err)
	}

	return entries, nil
}
