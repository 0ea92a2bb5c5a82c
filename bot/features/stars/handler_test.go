package stars

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

func newTestFeature() (*Feature, *service.MockLedgerService) {
	ledger := new(service.MockLedgerService)
	return New(new(service.MockUserService), ledger), ledger
}

func intOpt(name string, value int64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(value)}
}

func strOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: value}
}

func TestSpend(t *testing.T) {
	f, ledger := newTestFeature()
	ledger.On("SpendStars", mock.Anything, testDiscordID, int64(7), int64(10), mock.MatchedBy(func(r *string) bool {
		return r != nil && *r == "dragon"
	})).Return(&models.SpendResult{
		SpentStars: 10,
		User:       &models.User{DiscordID: testDiscordID, UnspentStars: 0},
		Character:  &models.Character{ID: 7, Name: "Arwen", Stars: 15},
	}, nil).Once()

	embed, err := f.run(context.Background(), testDiscordID, "spend",
		common.Options([]*discordgo.ApplicationCommandInteractionDataOption{intOpt("character", 7), intOpt("amount", 10), strOpt("reason", "dragon")}))
	require.NoError(t, err)

	assert.Equal(t, "⭐ Stars Spent", embed.Title)
	assert.Contains(t, embed.Description, "+10")
	assert.Equal(t, "15", embed.Fields[1].Value)
	assert.Equal(t, "0", embed.Fields[2].Value)
	ledger.AssertExpectations(t)
}

func TestSpendRefund(t *testing.T) {
	f, ledger := newTestFeature()
	ledger.On("SpendStars", mock.Anything, testDiscordID, int64(7), int64(-5), (*string)(nil)).Return(&models.SpendResult{
		SpentStars: -5,
		User:       &models.User{UnspentStars: 5},
		Character:  &models.Character{ID: 7, Name: "Arwen", Stars: 10},
	}, nil).Once()

	embed, err := f.run(context.Background(), testDiscordID, "spend",
		common.Options([]*discordgo.ApplicationCommandInteractionDataOption{intOpt("character", 7), intOpt("amount", -5)}))
	require.NoError(t, err)
	assert.Equal(t, "↩️ Stars Refunded", embed.Title)
}

func TestSpendInsufficientPool(t *testing.T) {
	f, ledger := newTestFeature()
	ledger.On("SpendStars", mock.Anything, testDiscordID, int64(7), int64(99), (*string)(nil)).
		Return(nil, service.ErrInsufficientPool).Once()

	_, err := f.run(context.Background(), testDiscordID, "spend",
		common.Options([]*discordgo.ApplicationCommandInteractionDataOption{intOpt("character", 7), intOpt("amount", 99)}))

	var botErr *common.BotError
	require.ErrorAs(t, err, &botErr)
	assert.Equal(t, "You don't have enough unspent stars.", botErr.UserMessage)
}

func TestAdjust(t *testing.T) {
	f, ledger := newTestFeature()
	ledger.On("AdjustPoolStars", mock.Anything, testDiscordID, int64(3), (*string)(nil)).Return(&models.AdjustResult{
		AddedStars: 3,
		User:       &models.User{UnspentStars: 13},
	}, nil).Once()

	embed, err := f.run(context.Background(), testDiscordID, "adjust",
		common.Options([]*discordgo.ApplicationCommandInteractionDataOption{intOpt("amount", 3)}))
	require.NoError(t, err)
	assert.Equal(t, "+3 ⭐", embed.Description)
	assert.Equal(t, "13", embed.Fields[0].Value)
}

func TestSet(t *testing.T) {
	f, ledger := newTestFeature()
	ledger.On("UpdateCharacterStars", mock.Anything, testDiscordID, int64(7), int64(0), (*string)(nil)).
		Return(&models.Character{ID: 7, Name: "Arwen"}, nil).Once()
	ledger.On("UpdateCharacterStars", mock.Anything, testDiscordID, int64(7), int64(-1), (*string)(nil)).
		Return(nil, service.ErrNegativeCharacterBalance).Once()

	embed, err := f.run(context.Background(), testDiscordID, "set",
		common.Options([]*discordgo.ApplicationCommandInteractionDataOption{intOpt("character", 7), intOpt("stars", 0)}))
	require.NoError(t, err)
	assert.Contains(t, embed.Description, "now has 0 ⭐")

	_, err = f.run(context.Background(), testDiscordID, "set",
		common.Options([]*discordgo.ApplicationCommandInteractionDataOption{intOpt("character", 7), intOpt("stars", -1)}))
	var botErr *common.BotError
	require.ErrorAs(t, err, &botErr)
	assert.Equal(t, "A character cannot go below 0 stars.", botErr.UserMessage)
}

func TestMissingOptions(t *testing.T) {
	f, _ := newTestFeature()
	_, err := f.run(context.Background(), testDiscordID, "spend", common.Options(nil))
	var botErr *common.BotError
	require.ErrorAs(t, err, &botErr)
	assert.Equal(t, "Please choose a character.", botErr.UserMessage)
}
