package service

import "errors"

var (
	// ErrInvalidAmount is returned for a zero spend or a negative initial star count
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidName is returned when a character name is empty
	ErrInvalidName = errors.New("invalid name")

	// ErrInsufficientPool is returned when the pool cannot cover an operation
	ErrInsufficientPool = errors.New("insufficient unspent stars")

	// ErrNegativeCharacterBalance is returned when a character would end up below zero stars
	ErrNegativeCharacterBalance = errors.New("character stars cannot be negative")

	// ErrCharacterNotFound is returned when a character does not exist or belongs to another user
	ErrCharacterNotFound = errors.New("character not found")

	// ErrUserNotFound is returned when a user has never been registered
	ErrUserNotFound = errors.New("user not found")
)
