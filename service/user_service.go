package service

import (
	"context"
	"fmt"

	"exptracker/events"
	"exptracker/models"

	log "github.com/sirupsen/logrus"
)

// InitialStarsReason annotates the STARS_ADDED entry of a new user's starting pool
const InitialStarsReason = "initial"

// userService implements the UserService interface
type userService struct {
	uowFactory    UnitOfWorkFactory
	startingStars int64
}

// NewUserService creates a new user service
func NewUserService(uowFactory UnitOfWorkFactory, startingStars int64) UserService {
	return &userService{
		uowFactory:    uowFactory,
		startingStars: startingStars,
	}
}

// GetOrCreateUser retrieves an existing user or creates a new one with the starting pool
func (s *userService) GetOrCreateUser(ctx context.Context, discordID int64, profile models.Profile) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	user, err := uow.UserRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user, err = uow.UserRepository().Create(ctx, discordID, profile, s.startingStars)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if user == nil {
		// A concurrent request registered the player first
		user, err = uow.UserRepository().GetByDiscordID(ctx, discordID)
		if err != nil {
			return nil, fmt.Errorf("failed to get registered user: %w", err)
		}
		if user == nil {
			return nil, fmt.Errorf("%w: %d", ErrUserNotFound, discordID)
		}
		return user, nil
	}

	if s.startingStars != 0 {
		reason := InitialStarsReason
		entry := models.NewStarsAddedEntry(discordID, s.startingStars, &reason)
		if err := RecordLogEntry(ctx, uow, entry, nil); err != nil {
			return nil, fmt.Errorf("failed to record starting stars: %w", err)
		}
	}

	uow.EventBus().Publish(events.UserCreatedEvent{
		DiscordID:    discordID,
		Username:     profile.Username,
		InitialStars: s.startingStars,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"discordID":    discordID,
		"username":     profile.Username,
		"initialStars": s.startingStars,
	}).Info("User registered")

	return user, nil
}

// GetUserInfo returns the user's profile and pool
func (s *userService) GetUserInfo(ctx context.Context, discordID int64) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %d", ErrUserNotFound, discordID)
	}

	return user, nil
}
