package common

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"exptracker/service"
)

// BotError represents a structured error with user-facing and internal messages
type BotError struct {
	UserMessage string // Message shown to Discord user
	LogMessage  string // Internal message for logging
	Err         error  // Underlying error
	System      bool   // Unexpected failure rather than a rejected request
}

// Error implements the error interface
func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.LogMessage, e.Err)
	}
	return e.LogMessage
}

// Unwrap returns the underlying error
func (e *BotError) Unwrap() error {
	return e.Err
}

// NewUserError creates an error for user-caused issues (bad input, missing characters, etc)
func NewUserError(userMessage string, logMessage string) *BotError {
	return &BotError{
		UserMessage: userMessage,
		LogMessage:  logMessage,
	}
}

// NewSystemError creates an error for system issues (database, unexpected state, etc)
func NewSystemError(err error, logMessage string) *BotError {
	return &BotError{
		UserMessage: "Something went wrong. Please try again later.",
		LogMessage:  logMessage,
		Err:         err,
		System:      true,
	}
}

// FromServiceError translates a ledger error into a BotError with a player-facing message
func FromServiceError(err error, logMessage string) *BotError {
	var botErr *BotError
	if errors.As(err, &botErr) {
		return botErr
	}

	var userMessage string
	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		userMessage = "That amount is not allowed."
	case errors.Is(err, service.ErrInvalidName):
		userMessage = "Character names cannot be empty."
	case errors.Is(err, service.ErrInsufficientPool):
		userMessage = "You don't have enough unspent stars."
	case errors.Is(err, service.ErrNegativeCharacterBalance):
		userMessage = "A character cannot go below 0 stars."
	case errors.Is(err, service.ErrCharacterNotFound):
		userMessage = "Character not found."
	case errors.Is(err, service.ErrUserNotFound):
		userMessage = "You are not registered yet."
	default:
		return NewSystemError(err, logMessage)
	}

	return &BotError{UserMessage: userMessage, LogMessage: logMessage, Err: err}
}

// HandleError logs err and reports it to the player
func HandleError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, deferred bool) {
	botErr := FromServiceError(err, "Unexpected error in bot command")

	fields := log.Fields{
		"command": i.ApplicationCommandData().Name,
		"error":   botErr.Error(),
	}
	if user := InteractionUser(i); user != nil {
		fields["user_id"] = user.ID
	}
	if botErr.System {
		log.WithFields(fields).Error(botErr.LogMessage)
	} else {
		log.WithFields(fields).Info(botErr.LogMessage)
	}

	if deferred {
		FollowUpWithError(s, i, botErr.UserMessage)
	} else {
		RespondWithError(s, i, botErr.UserMessage)
	}
}
