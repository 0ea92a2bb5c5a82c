package service

import (
	"context"
	"errors"
	"fmt"

	"exptracker/events"
	"exptracker/models"
	"exptracker/progression"
)

// RecordLogEntry appends an audit entry and queues the matching event.
// Every ledger mutation goes through here so no change is left unlogged.
func RecordLogEntry(ctx context.Context, uow UnitOfWork, entry *models.LogEntry, event events.Event) error {
	if err := uow.LogEntryRepository().Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to record %s log entry: %w", entry.Type, err)
	}

	if event != nil {
		uow.EventBus().Publish(event)
	}

	return nil
}

// publishLevelChange queues a LevelChangedEvent when oldStars and the
// character's current stars fall into different levels
func publishLevelChange(uow UnitOfWork, character *models.Character, oldStars int64) {
	oldLevel := progression.StarsToLevel(oldStars).Level
	newLevel := character.Progress().Level
	if oldLevel == newLevel {
		return
	}

	uow.EventBus().Publish(events.LevelChangedEvent{
		DiscordID:     character.DiscordID,
		CharacterID:   character.ID,
		CharacterName: character.Name,
		OldLevel:      oldLevel,
		NewLevel:      newLevel,
	})
}

// outcomeLabel maps an operation result to a metrics label
func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrInvalidName):
		return "invalid_name"
	case errors.Is(err, ErrInsufficientPool):
		return "insufficient_pool"
	case errors.Is(err, ErrNegativeCharacterBalance):
		return "negative_character_balance"
	case errors.Is(err, ErrCharacterNotFound):
		return "character_not_found"
	case errors.Is(err, ErrUserNotFound):
		return "user_not_found"
	default:
		return "error"
	}
}
