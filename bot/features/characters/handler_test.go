package characters

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"exptracker/bot/common"
	"exptracker/models"
	"exptracker/service"
)

const testDiscordID = int64(123456)

func newTestFeature() (*Feature, *service.MockLedgerService, *service.MockLogService) {
	ledger := new(service.MockLedgerService)
	logs := new(service.MockLogService)
	return New(new(service.MockUserService), ledger, logs), ledger, logs
}

func opts(values ...*discordgo.ApplicationCommandInteractionDataOption) options {
	return common.Options(values)
}

func intOpt(name string, value int64) *discordgo.ApplicationCommandInteractionDataOption {
	// discordgo decodes integer options as float64
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(value)}
}

func strOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: value}
}

func boolOpt(name string, value bool) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionBoolean, Value: value}
}

func TestCreateCharacter(t *testing.T) {
	f, ledger, _ := newTestFeature()
	ledger.On("CreateCharacter", mock.Anything, testDiscordID, "Gimli", int64(12), false).
		Return(&models.Character{ID: 3, Name: "Gimli", Stars: 12}, nil).Once()

	embed, err := f.run(context.Background(), testDiscordID, "create", opts(strOpt("name", "Gimli"), intOpt("stars", 12)))
	require.NoError(t, err)

	assert.Equal(t, "✨ Character Created", embed.Title)
	assert.Contains(t, embed.Description, "Gimli")
	assert.Equal(t, "Level 2 · 4/8 banners · 0/1 ⭐", embed.Fields[0].Value)
	assert.Equal(t, "4 ⭐", embed.Fields[2].Value)
	ledger.AssertExpectations(t)
}

func TestCreateCharacterRejectsBlankName(t *testing.T) {
	f, ledger, _ := newTestFeature()
	ledger.On("CreateCharacter", mock.Anything, testDiscordID, "  ", int64(0), false).
		Return(nil, service.ErrInvalidName).Once()

	_, err := f.run(context.Background(), testDiscordID, "create", opts(strOpt("name", "  ")))
	require.Error(t, err)

	var botErr *common.BotError
	require.ErrorAs(t, err, &botErr)
	assert.Equal(t, "Character names cannot be empty.", botErr.UserMessage)
	assert.False(t, botErr.System)
}

func TestListCharacters(t *testing.T) {
	f, _, logs := newTestFeature()
	logs.On("ListCharacters", mock.Anything, testDiscordID).Return([]*models.Character{
		{ID: 1, Name: "Arwen", Stars: 15},
		{ID: 2, Name: "Boromir", Dead: true},
	}, nil).Once()

	embed, err := f.run(context.Background(), testDiscordID, "list", nil)
	require.NoError(t, err)
	assert.Contains(t, embed.Description, "Arwen")
	assert.Contains(t, embed.Description, "Boromir")

	logs.On("ListCharacters", mock.Anything, testDiscordID).Return([]*models.Character{}, nil).Once()
	embed, err = f.run(context.Background(), testDiscordID, "list", nil)
	require.NoError(t, err)
	assert.Contains(t, embed.Description, "/character create")
}

func TestDeleteCharacter(t *testing.T) {
	f, ledger, _ := newTestFeature()
	ledger.On("DeleteCharacter", mock.Anything, testDiscordID, int64(9)).
		Return(nil, service.ErrCharacterNotFound).Once()

	_, err := f.run(context.Background(), testDiscordID, "delete", opts(intOpt("character", 9)))
	var botErr *common.BotError
	require.ErrorAs(t, err, &botErr)
	assert.Equal(t, "Character not found.", botErr.UserMessage)

	_, err = f.run(context.Background(), testDiscordID, "delete", nil)
	require.ErrorAs(t, err, &botErr)
	assert.Equal(t, "Please choose a character.", botErr.UserMessage)
}

func TestRenameCharacter(t *testing.T) {
	f, ledger, _ := newTestFeature()
	ledger.On("UpdateCharacter", mock.Anything, testDiscordID, int64(3), mock.MatchedBy(func(u models.CharacterUpdate) bool {
		return u.Name != nil && *u.Name == "Gimli son of Gloin" && u.Stars == nil && u.Dead == nil
	})).Return(&models.Character{ID: 3, Name: "Gimli son of Gloin"}, nil).Once()

	embed, err := f.run(context.Background(), testDiscordID, "rename", opts(intOpt("character", 3), strOpt("name", "Gimli son of Gloin")))
	require.NoError(t, err)
	assert.Equal(t, "✏️ Character Renamed", embed.Title)
	ledger.AssertExpectations(t)
}

func TestSetDead(t *testing.T) {
	f, ledger, _ := newTestFeature()
	ledger.On("UpdateCharacter", mock.Anything, testDiscordID, int64(3), mock.MatchedBy(func(u models.CharacterUpdate) bool {
		return u.Dead != nil && !*u.Dead
	})).Return(&models.Character{ID: 3, Name: "Gandalf"}, nil).Once()

	embed, err := f.run(context.Background(), testDiscordID, "dead", opts(intOpt("character", 3), boolOpt("dead", false)))
	require.NoError(t, err)
	assert.Equal(t, "❤️ Character Revived", embed.Title)
}

func TestUnknownSubcommand(t *testing.T) {
	f, _, _ := newTestFeature()
	_, err := f.run(context.Background(), testDiscordID, "explode", nil)
	assert.Error(t, err)
}
