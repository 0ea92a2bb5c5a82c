package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"exptracker/events"
	"exptracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testDiscordID int64 = 123456

func TestLedgerService_SpendStars_MovesPoolToCharacter(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()
	m.expectCommit()

	user := &models.User{DiscordID: testDiscordID, UnspentStars: 10}
	character := &models.Character{ID: 7, DiscordID: testDiscordID, Name: "Sir Ada", Stars: 5}

	m.userRepo.On("GetByDiscordIDForUpdate", ctx, testDiscordID).Return(user, nil)
	m.characterRepo.On("GetByIDForUpdate", ctx, testDiscordID, int64(7)).Return(character, nil)
	m.userRepo.On("AddUnspentStars", ctx, testDiscordID, int64(-10)).Return(int64(0), nil)
	m.characterRepo.On("AddStars", ctx, int64(7), int64(10)).Return(int64(15), nil)
	m.logEntryRepo.On("Append", ctx, mock.MatchedBy(func(e *models.LogEntry) bool {
		return e.Type == models.LogTypeStarsSpent &&
			e.CharacterID != nil && *e.CharacterID == 7 &&
			e.Value == models.StarsChange{Amount: 10}
	})).Return(nil).Once()

	service := NewLedgerService(m.factory, nil)
	result, err := service.SpendStars(ctx, testDiscordID, 7, 10, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(10), result.SpentStars)
	assert.Equal(t, int64(0), result.User.UnspentStars)
	assert.Equal(t, int64(15), result.Character.Stars)
	m.assertExpectations(t)

	published := m.publisher.PublishedEvents()
	require.Len(t, published, 2)
	assert.Equal(t, events.StarsSpentEvent{
		DiscordID:     testDiscordID,
		CharacterID:   7,
		CharacterName: "Sir Ada",
		Amount:        10,
		NewStars:      15,
	}, published[0])
	assert.Equal(t, events.LevelChangedEvent{
		DiscordID:     testDiscordID,
		CharacterID:   7,
		CharacterName: "Sir Ada",
		OldLevel:      1,
		NewLevel:      2,
	}, published[1])
}

func TestLedgerService_SpendStars_Refund(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()
	m.expectCommit()

	user := &models.User{DiscordID: testDiscordID, UnspentStars: 0}
	character := &models.Character{ID: 7, DiscordID: testDiscordID, Name: "Sir Ada", Stars: 10}

	m.userRepo.On("GetByDiscordIDForUpdate", ctx, testDiscordID).Return(user, nil)
	m.characterRepo.On("GetByIDForUpdate", ctx, testDiscordID, int64(7)).Return(character, nil)
	m.userRepo.On("AddUnspentStars", ctx, testDiscordID, int64(3)).Return(int64(3), nil)
	m.characterRepo.On("AddStars", ctx, int64(7), int64(-3)).Return(int64(7), nil)
	m.logEntryRepo.On("Append", ctx, mock.MatchedBy(func(e *models.LogEntry) bool {
		change, ok := e.Value.(models.StarsChange)
		return ok && e.Type == models.LogTypeStarsSpent &&
			change.Amount == -3 &&
			change.Reason != nil && *change.Reason == "mistake"
	})).Return(nil)

	service := NewLedgerService(m.factory, nil)
	result, err := service.SpendStars(ctx, testDiscordID, 7, -3, stringPtr("mistake"))

	require.NoError(t, err)
	assert.Equal(t, int64(-3), result.SpentStars)
	assert.Equal(t, int64(3), result.User.UnspentStars)
	assert.Equal(t, int64(7), result.Character.Stars)
	m.assertExpectations(t)

	published := m.publisher.PublishedEvents()
	require.Len(t, published, 2)
	levelChange := published[1].(events.LevelChangedEvent)
	assert.False(t, levelChange.IsLevelUp())
}

func TestLedgerService_SpendStars_InsufficientPool(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()

	user := &models.User{DiscordID: testDiscordID, UnspentStars: 10}
	character := &models.Character{ID: 7, DiscordID: testDiscordID, Stars: 0}

	m.userRepo.On("GetByDiscordIDForUpdate", ctx, testDiscordID).Return(user, nil)
	m.characterRepo.On("GetByIDForUpdate", ctx, testDiscordID, int64(7)).Return(character, nil)

	service := NewLedgerService(m.factory, nil)
	result, err := service.SpendStars(ctx, testDiscordID, 7, 11, nil)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInsufficientPool)
	m.assertExpectations(t)
	m.uow.AssertNotCalled(t, "Commit")
	m.userRepo.AssertNotCalled(t, "AddUnspentStars", mock.Anything, mock.Anything, mock.Anything)
	m.logEntryRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	assert.Empty(t, m.publisher.PublishedEvents())
}

func TestLedgerService_SpendStars_NegativeCharacterBalance(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()

	user := &models.User{DiscordID: testDiscordID, UnspentStars: 0}
	character := &models.Character{ID: 7, DiscordID: testDiscordID, Stars: 3}

	m.userRepo.On("GetByDiscordIDForUpdate", ctx, testDiscordID).Return(user, nil)
	m.characterRepo.On("GetByIDForUpdate", ctx, testDiscordID, int64(7)).Return(character, nil)

	service := NewLedgerService(m.factory, nil)
	_, err := service.SpendStars(ctx, testDiscordID, 7, -5, nil)

	assert.ErrorIs(t, err, ErrNegativeCharacterBalance)
	m.uow.AssertNotCalled(t, "Commit")
	m.characterRepo.AssertNotCalled(t, "AddStars", mock.Anything, mock.Anything, mock.Anything)
}

func TestLedgerService_SpendStars_ZeroAmount(t *testing.T) {
	m := newServiceMocks()

	service := NewLedgerService(m.factory, nil)
	_, err := service.SpendStars(context.Background(), testDiscordID, 7, 0, nil)

	assert.ErrorIs(t, err, ErrInvalidAmount)
	m.factory.AssertNotCalled(t, "Create")
}

func TestLedgerService_SpendStars_CharacterNotOwned(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()

	m.userRepo.On("GetByDiscordIDForUpdate", ctx, testDiscordID).Return(&models.User{DiscordID: testDiscordID, UnspentStars: 10}, nil)
	m.characterRepo.On("GetByIDForUpdate", ctx, testDiscordID, int64(99)).Return(nil, nil)

	service := NewLedgerService(m.factory, nil)
	_, err := service.SpendStars(ctx, testDiscordID, 99, 1, nil)

	assert.ErrorIs(t, err, ErrCharacterNotFound)
	m.uow.AssertNotCalled(t, "Commit")
}

func TestLedgerService_SpendStars_LogFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()

	m.userRepo.On("GetByDiscordIDForUpdate", ctx, testDiscordID).Return(&models.User{DiscordID: testDiscordID, UnspentStars: 10}, nil)
	m.characterRepo.On("GetByIDForUpdate", ctx, testDiscordID, int64(7)).Return(&models.Character{ID: 7, DiscordID: testDiscordID}, nil)
	m.userRepo.On("AddUnspentStars", ctx, testDiscordID, int64(-2)).Return(int64(8), nil)
	m.characterRepo.On("AddStars", ctx, int64(7), int64(2)).Return(int64(2), nil)
	m.logEntryRepo.On("Append", ctx, mock.Anything).Return(errors.New("connection reset"))

	service := NewLedgerService(m.factory, nil)
	_, err := service.SpendStars(ctx, testDiscordID, 7, 2, nil)

	assert.Error(t, err)
	m.uow.AssertCalled(t, "Rollback")
	m.uow.AssertNotCalled(t, "Commit")
	assert.Empty(t, m.publisher.PublishedEvents())
}

func TestLedgerService_AdjustPoolStars(t *testing.T) {
	ctx := context.Background()

	t.Run("adds to pool", func(t *testing.T) {
		m := newServiceMocks()
		m.expectCommit()

		m.userRepo.On("GetByDiscordIDForUpdate", ctx, testDiscordID).Return(&models.User{DiscordID: testDiscordID, UnspentStars: 3}, nil)
		m.userRepo.On("AddUnspentStars", ctx, testDiscordID, int64(5)).Return(int64(8), nil)
		m.logEntryRepo.On("Append", ctx, mock.MatchedBy(func(e *models.LogEntry) bool {
			return e.Type == models.LogTypeStarsAdded && e.CharacterID == nil && e.Amount() == 5
		})).Return(nil)

		result, err := NewLedgerService(m.factory, nil).AdjustPoolStars(ctx, testDiscordID, 5, stringPtr("session"))

		require.NoError(t, err)
		assert.Equal(t, int64(5), result.AddedStars)
		assert.Equal(t, int64(8), result.User.UnspentStars)
		m.assertExpectations(t)
		assert.Equal(t, []events.Event{events.StarsAddedEvent{
			DiscordID:       testDiscordID,
			Amount:          5,
			Reason:          stringPtr("session"),
			NewUnspentStars: 8,
		}}, m.publisher.PublishedEvents())
	})

	t.Run("cannot drain below zero", func(t *testing.T) {
		m := newServiceMocks()
		m.userRepo.On("GetByDiscordIDForUpdate", ctx, testDiscordID).Return(&models.User{DiscordID: testDiscordID, UnspentStars: 3}, nil)

		_, err := NewLedgerService(m.factory, nil).AdjustPoolStars(ctx, testDiscordID, -4, nil)

		assert.ErrorIs(t, err, ErrInsufficientPool)
		m.uow.AssertNotCalled(t, "Commit")
	})

	t.Run("zero amount is logged", func(t *testing.T) {
		m := newServiceMocks()
		m.expectCommit()

		m.userRepo.On("GetByDiscordIDForUpdate", ctx, testDiscordID).Return(&models.User{DiscordID: testDiscordID, UnspentStars: 3}, nil)
		m.userRepo.On("AddUnspentStars", ctx, testDiscordID, int64(0)).Return(int64(3), nil)
		m.logEntryRepo.On("Append", ctx, mock.Anything).Return(nil).Once()

		result, err := NewLedgerService(m.factory, nil).AdjustPoolStars(ctx, testDiscordID, 0, nil)

		require.NoError(t, err)
		assert.Equal(t, int64(0), result.AddedStars)
		m.assertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		m := newServiceMocks()
		m.userRepo.On("GetByDiscordIDForUpdate", ctx, testDiscordID).Return(nil, nil)

		_, err := NewLedgerService(m.factory, nil).AdjustPoolStars(ctx, testDiscordID, 1, nil)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestLedgerService_AmountsOutOfRange(t *testing.T) {
	ctx := context.Background()

	t.Run("adjust past max pool", func(t *testing.T) {
		m := newServiceMocks()
		m.userRepo.On("GetByDiscordIDForUpdate", ctx, testDiscordID).Return(&models.User{DiscordID: testDiscordID, UnspentStars: 3}, nil)

		_, err := NewLedgerService(m.factory, nil).AdjustPoolStars(ctx, testDiscordID, math.MaxInt64, nil)

		assert.ErrorIs(t, err, ErrInvalidAmount)
		m.userRepo.AssertNotCalled(t, "AddUnspentStars", mock.Anything, mock.Anything, mock.Anything)
		m.uow.AssertNotCalled(t, "Commit")
	})

	t.Run("adjust by min int", func(t *testing.T) {
		m := newServiceMocks()

		_, err := NewLedgerService(m.factory, nil).AdjustPoolStars(ctx, testDiscordID, math.MinInt64, nil)

		assert.ErrorIs(t, err, ErrInvalidAmount)
		m.factory.AssertNotCalled(t, "Create")
	})

	t.Run("spend by min int", func(t *testing.T) {
		m := newServiceMocks()

		_, err := NewLedgerService(m.factory, nil).SpendStars(ctx, testDiscordID, 7, math.MinInt64, nil)

		assert.ErrorIs(t, err, ErrInvalidAmount)
		m.factory.AssertNotCalled(t, "Create")
	})

	t.Run("spend past max character stars", func(t *testing.T) {
		m := newServiceMocks()
		m.userRepo.On("GetByDiscordIDForUpdate", ctx, testDiscordID).Return(&models.User{DiscordID: testDiscordID, UnspentStars: math.MaxInt64}, nil)
		m.characterRepo.On("GetByIDForUpdate", ctx, testDiscordID, int64(7)).Return(&models.Character{ID: 7, DiscordID: testDiscordID, Stars: 5}, nil)

		_, err := NewLedgerService(m.factory, nil).SpendStars(ctx, testDiscordID, 7, math.MaxInt64, nil)

		assert.ErrorIs(t, err, ErrInvalidAmount)
		m.uow.AssertNotCalled(t, "Commit")
	})
}

func TestLedgerService_CreateCharacter(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		m := newServiceMocks()
		m.expectCommit()

		m.userRepo.On("GetByDiscordID", ctx, testDiscordID).Return(&models.User{DiscordID: testDiscordID}, nil)
		m.characterRepo.On("Create", ctx, mock.MatchedBy(func(c *models.Character) bool {
			return c.Name == "Brom" && c.Stars == 40 && c.Dead && c.DiscordID == testDiscordID
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Character).ID = 12
		}).Return(nil)
		m.logEntryRepo.On("Append", ctx, mock.MatchedBy(func(e *models.LogEntry) bool {
			return e.Type == models.LogTypeCharacterAdded &&
				e.CharacterID != nil && *e.CharacterID == 12 &&
				e.Value == models.CharacterSnapshot{ID: 12, Name: "Brom", Stars: 40, Dead: true}
		})).Return(nil)

		character, err := NewLedgerService(m.factory, nil).CreateCharacter(ctx, testDiscordID, "  Brom ", 40, true)

		require.NoError(t, err)
		assert.Equal(t, int64(12), character.ID)
		assert.Equal(t, "Brom", character.Name)
		m.assertExpectations(t)
		assert.Len(t, m.publisher.PublishedEvents(), 1)
	})

	t.Run("negative initial stars", func(t *testing.T) {
		m := newServiceMocks()
		_, err := NewLedgerService(m.factory, nil).CreateCharacter(ctx, testDiscordID, "Brom", -1, false)
		assert.ErrorIs(t, err, ErrInvalidAmount)
		m.factory.AssertNotCalled(t, "Create")
	})

	t.Run("empty name", func(t *testing.T) {
		m := newServiceMocks()
		_, err := NewLedgerService(m.factory, nil).CreateCharacter(ctx, testDiscordID, "   ", 0, false)
		assert.ErrorIs(t, err, ErrInvalidName)
		m.factory.AssertNotCalled(t, "Create")
	})
}

func TestLedgerService_DeleteCharacter_LogsSnapshotBeforeDelete(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()
	m.expectCommit()

	character := &models.Character{ID: 7, DiscordID: testDiscordID, Name: "Doomed", Stars: 33, Dead: true}
	m.characterRepo.On("GetByIDForUpdate", ctx, testDiscordID, int64(7)).Return(character, nil)
	appendCall := m.logEntryRepo.On("Append", ctx, mock.MatchedBy(func(e *models.LogEntry) bool {
		return e.Type == models.LogTypeCharacterDeleted &&
			e.CharacterID != nil && *e.CharacterID == 7 &&
			e.Value == models.CharacterSnapshot{ID: 7, Name: "Doomed", Stars: 33, Dead: true}
	})).Return(nil)
	m.characterRepo.On("Delete", ctx, int64(7)).Return(nil).NotBefore(appendCall)

	deleted, err := NewLedgerService(m.factory, nil).DeleteCharacter(ctx, testDiscordID, 7)

	require.NoError(t, err)
	assert.Equal(t, character, deleted)
	m.assertExpectations(t)
}

func TestLedgerService_DeleteCharacter_NotFound(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()
	m.characterRepo.On("GetByIDForUpdate", ctx, testDiscordID, int64(7)).Return(nil, nil)

	_, err := NewLedgerService(m.factory, nil).DeleteCharacter(ctx, testDiscordID, 7)

	assert.ErrorIs(t, err, ErrCharacterNotFound)
	m.characterRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestLedgerService_UpdateCharacterStars(t *testing.T) {
	ctx := context.Background()

	t.Run("logs the difference", func(t *testing.T) {
		m := newServiceMocks()
		m.expectCommit()

		character := &models.Character{ID: 7, DiscordID: testDiscordID, Name: "Sir Ada", Stars: 3}
		m.characterRepo.On("GetByIDForUpdate", ctx, testDiscordID, int64(7)).Return(character, nil)
		m.characterRepo.On("Update", ctx, mock.MatchedBy(func(c *models.Character) bool {
			return c.Stars == 10
		})).Return(nil)
		m.logEntryRepo.On("Append", ctx, mock.MatchedBy(func(e *models.LogEntry) bool {
			return e.Type == models.LogTypeStarsSpent && e.Amount() == 7
		})).Return(nil)

		updated, err := NewLedgerService(m.factory, nil).UpdateCharacterStars(ctx, testDiscordID, 7, 10, nil)

		require.NoError(t, err)
		assert.Equal(t, int64(10), updated.Stars)
		m.assertExpectations(t)
		m.userRepo.AssertNotCalled(t, "AddUnspentStars", mock.Anything, mock.Anything, mock.Anything)
		assert.Len(t, m.publisher.PublishedEvents(), 2)
	})

	t.Run("unchanged stars write nothing", func(t *testing.T) {
		m := newServiceMocks()

		character := &models.Character{ID: 7, DiscordID: testDiscordID, Stars: 3}
		m.characterRepo.On("GetByIDForUpdate", ctx, testDiscordID, int64(7)).Return(character, nil)

		_, err := NewLedgerService(m.factory, nil).UpdateCharacterStars(ctx, testDiscordID, 7, 3, nil)

		require.NoError(t, err)
		m.characterRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		m.logEntryRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("negative stars", func(t *testing.T) {
		m := newServiceMocks()
		_, err := NewLedgerService(m.factory, nil).UpdateCharacterStars(ctx, testDiscordID, 7, -1, nil)
		assert.ErrorIs(t, err, ErrNegativeCharacterBalance)
		m.factory.AssertNotCalled(t, "Create")
	})
}

func TestLedgerService_UpdateCharacter_RenameIsNotLogged(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks()
	m.expectCommit()

	character := &models.Character{ID: 7, DiscordID: testDiscordID, Name: "Brom", Stars: 3}
	m.characterRepo.On("GetByIDForUpdate", ctx, testDiscordID, int64(7)).Return(character, nil)
	m.characterRepo.On("Update", ctx, mock.MatchedBy(func(c *models.Character) bool {
		return c.Name == "Brom the Bold" && c.Dead && c.Stars == 3
	})).Return(nil)

	dead := true
	updated, err := NewLedgerService(m.factory, nil).UpdateCharacter(ctx, testDiscordID, 7, models.CharacterUpdate{
		Name: stringPtr("Brom the Bold"),
		Dead: &dead,
	})

	require.NoError(t, err)
	assert.Equal(t, "Brom the Bold", updated.Name)
	m.assertExpectations(t)
	m.logEntryRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	assert.Empty(t, m.publisher.PublishedEvents())
}

func TestLedgerService_UpdateCharacter_EmptyName(t *testing.T) {
	m := newServiceMocks()
	_, err := NewLedgerService(m.factory, nil).UpdateCharacter(context.Background(), testDiscordID, 7, models.CharacterUpdate{
		Name: stringPtr(""),
	})
	assert.ErrorIs(t, err, ErrInvalidName)
}
