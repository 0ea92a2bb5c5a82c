package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// LogType represents the kind of mutation recorded in the audit log
type LogType string

const (
	LogTypeCharacterAdded   LogType = "CHARACTER_ADDED"
	LogTypeCharacterDeleted LogType = "CHARACTER_DELETED"
	LogTypeStarsAdded       LogType = "STARS_ADDED"
	LogTypeStarsSpent       LogType = "STARS_SPENT"
)

// IsValid reports whether the type is one of the known log types
func (t LogType) IsValid() bool {
	switch t {
	case LogTypeCharacterAdded, LogTypeCharacterDeleted, LogTypeStarsAdded, LogTypeStarsSpent:
		return true
	}
	return false
}

// RequiresCharacter reports whether entries of this type must reference a character
func (t LogType) RequiresCharacter() bool {
	return t != LogTypeStarsAdded
}

// String returns the string representation of the log type
func (t LogType) String() string {
	return string(t)
}

// LogValue is the typed payload of a log entry. It is implemented by
// CharacterSnapshot and StarsChange only.
type LogValue interface {
	logValue()
}

// CharacterSnapshot is the payload of CHARACTER_ADDED and CHARACTER_DELETED entries
type CharacterSnapshot struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Stars int64  `json:"stars"`
	Dead  bool   `json:"dead"`
}

func (CharacterSnapshot) logValue() {}

// StarsChange is the payload of STARS_ADDED and STARS_SPENT entries
type StarsChange struct {
	Amount int64   `json:"amount"`
	Reason *string `json:"reason"`
}

func (StarsChange) logValue() {}

// LogEntry is an append-only audit record of a star or character mutation
type LogEntry struct {
	ID          int64     `db:"id"`
	DiscordID   int64     `db:"discord_id"`
	CharacterID *int64    `db:"character_id"`
	Type        LogType   `db:"type"`
	Value       LogValue  `db:"value"`
	CreatedAt   time.Time `db:"created_at"`
}

// NewCharacterAddedEntry records the creation of a character
func NewCharacterAddedEntry(discordID int64, character *Character) *LogEntry {
	id := character.ID
	return &LogEntry{
		DiscordID:   discordID,
		CharacterID: &id,
		Type:        LogTypeCharacterAdded,
		Value:       character.Snapshot(),
	}
}

// NewCharacterDeletedEntry records the state of a character right before deletion
func NewCharacterDeletedEntry(discordID int64, character *Character) *LogEntry {
	id := character.ID
	return &LogEntry{
		DiscordID:   discordID,
		CharacterID: &id,
		Type:        LogTypeCharacterDeleted,
		Value:       character.Snapshot(),
	}
}

// NewStarsAddedEntry records a change of the user's pool
func NewStarsAddedEntry(discordID int64, amount int64, reason *string) *LogEntry {
	return &LogEntry{
		DiscordID: discordID,
		Type:      LogTypeStarsAdded,
		Value:     StarsChange{Amount: amount, Reason: reason},
	}
}

// NewStarsSpentEntry records a change of a character's stars. A negative amount is a refund.
func NewStarsSpentEntry(discordID, characterID int64, amount int64, reason *string) *LogEntry {
	return &LogEntry{
		DiscordID:   discordID,
		CharacterID: &characterID,
		Type:        LogTypeStarsSpent,
		Value:       StarsChange{Amount: amount, Reason: reason},
	}
}

// Validate checks that the entry's payload matches its type
func (e *LogEntry) Validate() error {
	if !e.Type.IsValid() {
		return fmt.Errorf("unknown log type %q", e.Type)
	}
	if e.Type.RequiresCharacter() && e.CharacterID == nil {
		return fmt.Errorf("%s entries require a character", e.Type)
	}
	if e.Value == nil {
		return errors.New("log entry value is required")
	}

	switch e.Type {
	case LogTypeCharacterAdded, LogTypeCharacterDeleted:
		if _, ok := e.Value.(CharacterSnapshot); !ok {
			return fmt.Errorf("%s entries require a character snapshot, got %T", e.Type, e.Value)
		}
	case LogTypeStarsAdded, LogTypeStarsSpent:
		if _, ok := e.Value.(StarsChange); !ok {
			return fmt.Errorf("%s entries require a stars change, got %T", e.Type, e.Value)
		}
	}
	return nil
}

// Amount returns the star delta of a stars entry, or 0 for character entries
func (e *LogEntry) Amount() int64 {
	if change, ok := e.Value.(StarsChange); ok {
		return change.Amount
	}
	return 0
}

// EncodeValue serializes the payload for storage
func (e *LogEntry) EncodeValue() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(e.Value)
}

// DecodeLogValue parses a stored payload according to the entry type.
// Payloads must be JSON objects; bare numbers from the legacy format are rejected.
func DecodeLogValue(logType LogType, raw []byte) (LogValue, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("log value for %s is not an object: %w", logType, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("log value for %s is not an object: null", logType)
	}

	switch logType {
	case LogTypeCharacterAdded, LogTypeCharacterDeleted:
		var snapshot CharacterSnapshot
		if err := json.Unmarshal(raw, &snapshot); err != nil {
			return nil, fmt.Errorf("failed to decode character snapshot: %w", err)
		}
		return snapshot, nil
	case LogTypeStarsAdded, LogTypeStarsSpent:
		if _, ok := fields["amount"]; !ok {
			return nil, fmt.Errorf("log value for %s is missing amount", logType)
		}
		var change StarsChange
		if err := json.Unmarshal(raw, &change); err != nil {
			return nil, fmt.Errorf("failed to decode stars change: %w", err)
		}
		return change, nil
	default:
		return nil, fmt.Errorf("unknown log type %q", logType)
	}
}
