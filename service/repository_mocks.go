package service

import (
	"context"

	"exptracker/events"
	"exptracker/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByDiscordIDForUpdate(ctx context.Context, discordID int64) (*models.User, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, discordID int64, profile models.Profile, initialStars int64) (*models.User, error) {
	args := m.Called(ctx, discordID, profile, initialStars)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) AddUnspentStars(ctx context.Context, discordID int64, amount int64) (int64, error) {
	args := m.Called(ctx, discordID, amount)
	return args.Get(0).(int64), args.Error(1)
}

// MockCharacterRepository is a mock implementation of CharacterRepository
type MockCharacterRepository struct {
	mock.Mock
}

func (m *MockCharacterRepository) GetByID(ctx context.Context, discordID, characterID int64) (*models.Character, error) {
	args := m.Called(ctx, discordID, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Character), args.Error(1)
}

func (m *MockCharacterRepository) GetByIDForUpdate(ctx context.Context, discordID, characterID int64) (*models.Character, error) {
	args := m.Called(ctx, discordID, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Character), args.Error(1)
}

func (m *MockCharacterRepository) ListByUser(ctx context.Context, discordID int64) ([]*models.Character, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Character), args.Error(1)
}

func (m *MockCharacterRepository) Create(ctx context.Context, character *models.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *MockCharacterRepository) AddStars(ctx context.Context, characterID int64, amount int64) (int64, error) {
	args := m.Called(ctx, characterID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCharacterRepository) Update(ctx context.Context, character *models.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *MockCharacterRepository) Delete(ctx context.Context, characterID int64) error {
	args := m.Called(ctx, characterID)
	return args.Error(0)
}

// MockLogEntryRepository is a mock implementation of LogEntryRepository
type MockLogEntryRepository struct {
	mock.Mock
}

func (m *MockLogEntryRepository) Append(ctx context.Context, entry *models.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLogEntryRepository) ListByUser(ctx context.Context, discordID int64, limit int) ([]*models.LogEntry, error) {
	args := m.Called(ctx, discordID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LogEntry), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// PublishedEvents returns every event passed to Publish, in order
func (m *MockEventPublisher) PublishedEvents() []events.Event {
	var published []events.Event
	for _, call := range m.Calls {
		if call.Method == "Publish" {
			published = append(published, call.Arguments.Get(0).(events.Event))
		}
	}
	return published
}

// MockUnitOfWork is a mock implementation of UnitOfWork.
// Transaction calls are mocked; repositories are returned as configured.
type MockUnitOfWork struct {
	mock.Mock
	userRepo      UserRepository
	characterRepo CharacterRepository
	logEntryRepo  LogEntryRepository
	eventBus      EventPublisher
}

// SetRepositories configures the repositories returned by the getters
func (m *MockUnitOfWork) SetRepositories(userRepo UserRepository, characterRepo CharacterRepository, logEntryRepo LogEntryRepository) {
	m.userRepo = userRepo
	m.characterRepo = characterRepo
	m.logEntryRepo = logEntryRepo
}

// SetEventBus configures the publisher returned by EventBus
func (m *MockUnitOfWork) SetEventBus(eventBus EventPublisher) {
	m.eventBus = eventBus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository {
	return m.userRepo
}

func (m *MockUnitOfWork) CharacterRepository() CharacterRepository {
	return m.characterRepo
}

func (m *MockUnitOfWork) LogEntryRepository() LogEntryRepository {
	return m.logEntryRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
