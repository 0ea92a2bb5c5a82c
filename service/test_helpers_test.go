package service

import (
	"testing"

	"github.com/stretchr/testify/mock"
)

// serviceMocks bundles a mocked unit of work with its repositories
type serviceMocks struct {
	factory       *MockUnitOfWorkFactory
	uow           *MockUnitOfWork
	userRepo      *MockUserRepository
	characterRepo *MockCharacterRepository
	logEntryRepo  *MockLogEntryRepository
	publisher     *MockEventPublisher
}

func newServiceMocks() *serviceMocks {
	m := &serviceMocks{
		factory:       new(MockUnitOfWorkFactory),
		uow:           new(MockUnitOfWork),
		userRepo:      new(MockUserRepository),
		characterRepo: new(MockCharacterRepository),
		logEntryRepo:  new(MockLogEntryRepository),
		publisher:     new(MockEventPublisher),
	}
	m.uow.SetRepositories(m.userRepo, m.characterRepo, m.logEntryRepo)
	m.uow.SetEventBus(m.publisher)

	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", mock.Anything).Return(nil)
	m.uow.On("Rollback").Return(nil)
	m.publisher.On("Publish", mock.Anything).Return()
	return m
}

func (m *serviceMocks) expectCommit() {
	m.uow.On("Commit").Return(nil)
}

func (m *serviceMocks) assertExpectations(t *testing.T) {
	m.factory.AssertExpectations(t)
	m.uow.AssertExpectations(t)
	m.userRepo.AssertExpectations(t)
	m.characterRepo.AssertExpectations(t)
	m.logEntryRepo.AssertExpectations(t)
}

func stringPtr(s string) *string {
	return &s
}
