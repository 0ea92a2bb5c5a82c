package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"exptracker/events"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, embed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

func TestLevelUpAnnouncer(t *testing.T) {
	sender := new(mockSender)
	sender.On("ChannelMessageSendEmbed", "555", mock.MatchedBy(func(e *discordgo.MessageEmbed) bool {
		return e.Title == "🎉 Level Up!" && e.Description == "<@123456>'s **Arwen** reached **level 3**!"
	})).Return(&discordgo.Message{}, nil).Once()

	announcer := NewLevelUpAnnouncer(sender, "555")
	err := announcer.HandleLevelChanged(context.Background(), events.LevelChangedEvent{
		DiscordID:     123456,
		CharacterID:   7,
		CharacterName: "Arwen",
		OldLevel:      1,
		NewLevel:      3,
	})
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestLevelUpAnnouncerIgnoresLevelLoss(t *testing.T) {
	sender := new(mockSender)
	announcer := NewLevelUpAnnouncer(sender, "555")

	err := announcer.HandleLevelChanged(context.Background(), events.LevelChangedEvent{OldLevel: 3, NewLevel: 2})
	require.NoError(t, err)
	sender.AssertNotCalled(t, "ChannelMessageSendEmbed", mock.Anything, mock.Anything)
}

func TestLevelUpAnnouncerErrors(t *testing.T) {
	sender := new(mockSender)
	sender.On("ChannelMessageSendEmbed", "555", mock.Anything).Return(nil, errors.New("missing access")).Once()
	announcer := NewLevelUpAnnouncer(sender, "555")

	err := announcer.HandleLevelChanged(context.Background(), events.LevelChangedEvent{OldLevel: 1, NewLevel: 2})
	assert.ErrorContains(t, err, "missing access")

	err = announcer.HandleLevelChanged(context.Background(), events.StarsAddedEvent{})
	assert.Error(t, err)
}

func TestRegisterBotSubscriptionsDeliversAfterFlush(t *testing.T) {
	sender := new(mockSender)
	delivered := make(chan struct{})
	sender.On("ChannelMessageSendEmbed", "555", mock.Anything).
		Run(func(mock.Arguments) { close(delivered) }).
		Return(&discordgo.Message{}, nil).Once()

	bus := events.NewBus()
	RegisterBotSubscriptions(bus, NewLevelUpAnnouncer(sender, "555"))

	txBus := events.NewTransactionalBus(bus)
	txBus.Publish(events.LevelChangedEvent{DiscordID: 1, CharacterName: "Arwen", OldLevel: 1, NewLevel: 2})
	require.NoError(t, txBus.Flush(context.Background()))

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("level-up was not announced")
	}
}
