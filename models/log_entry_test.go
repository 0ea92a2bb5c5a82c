package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLogValue(t *testing.T) {
	t.Run("character snapshot", func(t *testing.T) {
		value, err := DecodeLogValue(LogTypeCharacterDeleted, []byte(`{"id":7,"name":"Gimli","stars":40,"dead":true}`))
		require.NoError(t, err)
		assert.Equal(t, CharacterSnapshot{ID: 7, Name: "Gimli", Stars: 40, Dead: true}, value)
	})

	t.Run("stars change", func(t *testing.T) {
		value, err := DecodeLogValue(LogTypeStarsSpent, []byte(`{"amount":-3,"reason":null}`))
		require.NoError(t, err)
		assert.Equal(t, StarsChange{Amount: -3}, value)
	})

	rejected := []struct {
		name    string
		logType LogType
		raw     string
	}{
		{"null snapshot", LogTypeCharacterAdded, `null`},
		{"null stars change", LogTypeStarsAdded, `null`},
		{"legacy bare integer", LogTypeStarsSpent, `5`},
		{"missing amount", LogTypeStarsAdded, `{"reason":"x"}`},
		{"unknown type", LogType("BOGUS"), `{}`},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			value, err := DecodeLogValue(tt.logType, []byte(tt.raw))
			assert.Error(t, err)
			assert.Nil(t, value)
		})
	}
}
