package service

import (
	"context"

	"exptracker/models"

	"github.com/stretchr/testify/mock"
)

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetOrCreateUser(ctx context.Context, discordID int64, profile models.Profile) (*models.User, error) {
	args := m.Called(ctx, discordID, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetUserInfo(ctx context.Context, discordID int64) (*models.User, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockLedgerService is a mock implementation of LedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) SpendStars(ctx context.Context, discordID, characterID int64, amount int64, reason *string) (*models.SpendResult, error) {
	args := m.Called(ctx, discordID, characterID, amount, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SpendResult), args.Error(1)
}

func (m *MockLedgerService) AdjustPoolStars(ctx context.Context, discordID int64, amount int64, reason *string) (*models.AdjustResult, error) {
	args := m.Called(ctx, discordID, amount, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdjustResult), args.Error(1)
}

func (m *MockLedgerService) CreateCharacter(ctx context.Context, discordID int64, name string, initialStars int64, dead bool) (*models.Character, error) {
	args := m.Called(ctx, discordID, name, initialStars, dead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Character), args.Error(1)
}

func (m *MockLedgerService) DeleteCharacter(ctx context.Context, discordID, characterID int64) (*models.Character, error) {
	args := m.Called(ctx, discordID, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Character), args.Error(1)
}

func (m *MockLedgerService) UpdateCharacterStars(ctx context.Context, discordID, characterID int64, newStars int64, reason *string) (*models.Character, error) {
	args := m.Called(ctx, discordID, characterID, newStars, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Character), args.Error(1)
}

func (m *MockLedgerService) UpdateCharacter(ctx context.Context, discordID, characterID int64, update models.CharacterUpdate) (*models.Character, error) {
	args := m.Called(ctx, discordID, characterID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Character), args.Error(1)
}

// MockLogService is a mock implementation of LogService
type MockLogService struct {
	mock.Mock
}

func (m *MockLogService) ListLogs(ctx context.Context, discordID int64) ([]*models.LogEntry, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LogEntry), args.Error(1)
}

func (m *MockLogService) ListRecentLogs(ctx context.Context, discordID int64, limit int) ([]*models.LogEntry, error) {
	args := m.Called(ctx, discordID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LogEntry), args.Error(1)
}

func (m *MockLogService) ListCharacters(ctx context.Context, discordID int64) ([]*models.Character, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Character), args.Error(1)
}

func (m *MockLogService) GetCharacter(ctx context.Context, discordID, characterID int64) (*models.Character, error) {
	args := m.Called(ctx, discordID, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Character), args.Error(1)
}
