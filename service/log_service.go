package service

import (
	"context"
	"fmt"

	"exptracker/models"
)

type logService struct {
	uowFactory UnitOfWorkFactory
}

// NewLogService creates a new service for read-only log and character queries
func NewLogService(uowFactory UnitOfWorkFactory) LogService {
	return &logService{
		uowFactory: uowFactory,
	}
}

func (s *logService) ListLogs(ctx context.Context, discordID int64) ([]*models.LogEntry, error) {
	return s.ListRecentLogs(ctx, discordID, 0)
}

func (s *logService) ListRecentLogs(ctx context.Context, discordID int64, limit int) ([]*models.LogEntry, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.LogEntryRepository().ListByUser(ctx, discordID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	return entries, nil
}

func (s *logService) ListCharacters(ctx context.Context, discordID int64) ([]*models.Character, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	characters, err := uow.CharacterRepository().ListByUser(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return characters, nil
}

func (s *logService) GetCharacter(ctx context.Context, discordID, characterID int64) (*models.Character, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	character, err := uow.CharacterRepository().GetByID(ctx, discordID, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	if character == nil {
		return nil, fmt.Errorf("%w: %d", ErrCharacterNotFound, characterID)
	}
	return character, nil
}
