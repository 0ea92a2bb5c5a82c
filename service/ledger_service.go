package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"exptracker/events"
	"exptracker/metrics"
	"exptracker/models"

	log "github.com/sirupsen/logrus"
)

type ledgerService struct {
	uowFactory UnitOfWorkFactory
	metrics    *metrics.LedgerMetrics
}

// NewLedgerService creates a new ledger service. m may be nil.
func NewLedgerService(uowFactory UnitOfWorkFactory, m *metrics.LedgerMetrics) LedgerService {
	return &ledgerService{
		uowFactory: uowFactory,
		metrics:    m,
	}
}

// track returns a func recording the operation's outcome from *err once it returns
func (s *ledgerService) track(operation string, err *error) func() {
	start := time.Now()
	return func() {
		s.metrics.Observe(operation, outcomeLabel(*err), time.Since(start))
	}
}

// SpendStars moves stars between the user's pool and one of their characters
func (s *ledgerService) SpendStars(ctx context.Context, discordID, characterID int64, amount int64, reason *string) (result *models.SpendResult, err error) {
	defer s.track("spend_stars", &err)()

	if amount == 0 {
		return nil, fmt.Errorf("%w: spend amount must be non-zero", ErrInvalidAmount)
	}
	if amount == math.MinInt64 {
		return nil, fmt.Errorf("%w: spend amount out of range", ErrInvalidAmount)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	// Lock order is always user then character
	user, err := uow.UserRepository().GetByDiscordIDForUpdate(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %d", ErrUserNotFound, discordID)
	}

	character, err := uow.CharacterRepository().GetByIDForUpdate(ctx, discordID, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	if character == nil {
		return nil, fmt.Errorf("%w: %d", ErrCharacterNotFound, characterID)
	}

	if addOverflows(character.Stars, amount) {
		return nil, fmt.Errorf("%w: spend amount out of range", ErrInvalidAmount)
	}
	if amount > 0 && !user.CanAfford(amount) {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientPool, user.UnspentStars, amount)
	}
	if character.Stars+amount < 0 {
		return nil, fmt.Errorf("%w: %s has %d stars, cannot remove %d", ErrNegativeCharacterBalance, character.Name, character.Stars, -amount)
	}

	oldStars := character.Stars

	user.UnspentStars, err = uow.UserRepository().AddUnspentStars(ctx, discordID, -amount)
	if err != nil {
		return nil, fmt.Errorf("failed to update unspent stars: %w", err)
	}

	character.Stars, err = uow.CharacterRepository().AddStars(ctx, characterID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to update character stars: %w", err)
	}

	entry := models.NewStarsSpentEntry(discordID, characterID, amount, reason)
	event := events.StarsSpentEvent{
		DiscordID:     discordID,
		CharacterID:   characterID,
		CharacterName: character.Name,
		Amount:        amount,
		Reason:        reason,
		NewStars:      character.Stars,
	}
	if err := RecordLogEntry(ctx, uow, entry, event); err != nil {
		return nil, err
	}
	publishLevelChange(uow, character, oldStars)

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.metrics.AddStarsMoved("spend_stars", amount)
	log.WithFields(log.Fields{
		"discordID":    discordID,
		"characterID":  characterID,
		"amount":       amount,
		"stars":        character.Stars,
		"unspentStars": user.UnspentStars,
	}).Info("Stars spent")

	return &models.SpendResult{
		SpentStars: amount,
		User:       user,
		Character:  character,
	}, nil
}

// AdjustPoolStars adds to or removes from the user's pool
func (s *ledgerService) AdjustPoolStars(ctx context.Context, discordID int64, amount int64, reason *string) (result *models.AdjustResult, err error) {
	defer s.track("adjust_pool_stars", &err)()

	if amount == math.MinInt64 {
		return nil, fmt.Errorf("%w: adjust amount out of range", ErrInvalidAmount)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	user, err := uow.UserRepository().GetByDiscordIDForUpdate(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %d", ErrUserNotFound, discordID)
	}

	if addOverflows(user.UnspentStars, amount) {
		return nil, fmt.Errorf("%w: adjust amount out of range", ErrInvalidAmount)
	}
	if user.UnspentStars+amount < 0 {
		return nil, fmt.Errorf("%w: have %d, cannot remove %d", ErrInsufficientPool, user.UnspentStars, -amount)
	}

	user.UnspentStars, err = uow.UserRepository().AddUnspentStars(ctx, discordID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to update unspent stars: %w", err)
	}

	entry := models.NewStarsAddedEntry(discordID, amount, reason)
	event := events.StarsAddedEvent{
		DiscordID:       discordID,
		Amount:          amount,
		Reason:          reason,
		NewUnspentStars: user.UnspentStars,
	}
	if err := RecordLogEntry(ctx, uow, entry, event); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.metrics.AddStarsMoved("adjust_pool_stars", amount)
	log.WithFields(log.Fields{
		"discordID":    discordID,
		"amount":       amount,
		"unspentStars": user.UnspentStars,
	}).Info("Pool stars adjusted")

	return &models.AdjustResult{
		AddedStars: amount,
		User:       user,
	}, nil
}

// CreateCharacter creates a character. Initial stars do not come out of the pool.
func (s *ledgerService) CreateCharacter(ctx context.Context, discordID int64, name string, initialStars int64, dead bool) (character *models.Character, err error) {
	defer s.track("create_character", &err)()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: character name is required", ErrInvalidName)
	}
	if initialStars < 0 {
		return nil, fmt.Errorf("%w: initial stars cannot be negative", ErrInvalidAmount)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	user, err := uow.UserRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %d", ErrUserNotFound, discordID)
	}

	character = &models.Character{
		DiscordID: discordID,
		Name:      name,
		Stars:     initialStars,
		Dead:      dead,
	}
	if err := uow.CharacterRepository().Create(ctx, character); err != nil {
		return nil, fmt.Errorf("failed to create character: %w", err)
	}

	entry := models.NewCharacterAddedEntry(discordID, character)
	event := events.CharacterAddedEvent{
		DiscordID:   discordID,
		CharacterID: character.ID,
		Name:        character.Name,
		Stars:       character.Stars,
	}
	if err := RecordLogEntry(ctx, uow, entry, event); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"discordID":   discordID,
		"characterID": character.ID,
		"stars":       character.Stars,
	}).Info("Character created")

	return character, nil
}

// DeleteCharacter removes a character. The CHARACTER_DELETED entry is written
// while the row still exists; the foreign key clears its reference afterwards.
func (s *ledgerService) DeleteCharacter(ctx context.Context, discordID, characterID int64) (character *models.Character, err error) {
	defer s.track("delete_character", &err)()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	character, err = uow.CharacterRepository().GetByIDForUpdate(ctx, discordID, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	if character == nil {
		return nil, fmt.Errorf("%w: %d", ErrCharacterNotFound, characterID)
	}

	entry := models.NewCharacterDeletedEntry(discordID, character)
	event := events.CharacterDeletedEvent{
		DiscordID:   discordID,
		CharacterID: character.ID,
		Name:        character.Name,
		Stars:       character.Stars,
		Dead:        character.Dead,
	}
	if err := RecordLogEntry(ctx, uow, entry, event); err != nil {
		return nil, err
	}

	if err := uow.CharacterRepository().Delete(ctx, characterID); err != nil {
		return nil, fmt.Errorf("failed to delete character: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"discordID":   discordID,
		"characterID": characterID,
	}).Info("Character deleted")

	return character, nil
}

// UpdateCharacterStars sets a character's stars without touching the pool
func (s *ledgerService) UpdateCharacterStars(ctx context.Context, discordID, characterID int64, newStars int64, reason *string) (*models.Character, error) {
	return s.UpdateCharacter(ctx, discordID, characterID, models.CharacterUpdate{
		Stars:  &newStars,
		Reason: reason,
	})
}

// UpdateCharacter applies a partial update. Only star changes are logged.
func (s *ledgerService) UpdateCharacter(ctx context.Context, discordID, characterID int64, update models.CharacterUpdate) (character *models.Character, err error) {
	defer s.track("update_character", &err)()

	var name string
	if update.Name != nil {
		name = strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: character name cannot be empty", ErrInvalidName)
		}
	}
	if update.Stars != nil && *update.Stars < 0 {
		return nil, fmt.Errorf("%w: stars cannot be set to %d", ErrNegativeCharacterBalance, *update.Stars)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	character, err = uow.CharacterRepository().GetByIDForUpdate(ctx, discordID, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	if character == nil {
		return nil, fmt.Errorf("%w: %d", ErrCharacterNotFound, characterID)
	}

	oldStars := character.Stars
	changed := false
	if update.Name != nil && name != character.Name {
		character.Name = name
		changed = true
	}
	if update.Dead != nil && *update.Dead != character.Dead {
		character.Dead = *update.Dead
		changed = true
	}
	if update.Stars != nil && *update.Stars != character.Stars {
		character.Stars = *update.Stars
		changed = true
	}

	if !changed {
		return character, nil
	}

	if err := uow.CharacterRepository().Update(ctx, character); err != nil {
		return nil, fmt.Errorf("failed to update character: %w", err)
	}

	if delta := character.Stars - oldStars; delta != 0 {
		entry := models.NewStarsSpentEntry(discordID, characterID, delta, update.Reason)
		event := events.StarsSpentEvent{
			DiscordID:     discordID,
			CharacterID:   characterID,
			CharacterName: character.Name,
			Amount:        delta,
			Reason:        update.Reason,
			NewStars:      character.Stars,
		}
		if err := RecordLogEntry(ctx, uow, entry, event); err != nil {
			return nil, err
		}
		publishLevelChange(uow, character, oldStars)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"discordID":   discordID,
		"characterID": characterID,
		"stars":       character.Stars,
		"dead":        character.Dead,
	}).Info("Character updated")

	return character, nil
}

// addOverflows reports whether a+b does not fit in an int64
func addOverflows(a, b int64) bool {
	return (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b)
}
