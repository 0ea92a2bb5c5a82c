package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"exptracker/bot/common"
	"exptracker/events"
)

// MessageSender is the part of a Discord session the announcer needs
type MessageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// LevelUpAnnouncer posts level-ups to a channel
type LevelUpAnnouncer struct {
	sender    MessageSender
	channelID string
}

func NewLevelUpAnnouncer(sender MessageSender, channelID string) *LevelUpAnnouncer {
	return &LevelUpAnnouncer{
		sender:    sender,
		channelID: channelID,
	}
}

// HandleLevelChanged announces a LevelChangedEvent if it is a level-up
func (a *LevelUpAnnouncer) HandleLevelChanged(ctx context.Context, event events.Event) error {
	levelEvent, ok := event.(events.LevelChangedEvent)
	if !ok {
		return fmt.Errorf("received non-LevelChangedEvent in level change handler")
	}

	if !levelEvent.IsLevelUp() {
		return nil
	}

	if _, err := a.sender.ChannelMessageSendEmbed(a.channelID, buildLevelUpEmbed(levelEvent)); err != nil {
		return fmt.Errorf("failed to send level-up announcement: %w", err)
	}

	log.WithFields(log.Fields{
		"discord_id":   levelEvent.DiscordID,
		"character_id": levelEvent.CharacterID,
		"old_level":    levelEvent.OldLevel,
		"new_level":    levelEvent.NewLevel,
	}).Info("Announced level-up")
	return nil
}

func buildLevelUpEmbed(e events.LevelChangedEvent) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎉 Level Up!",
		Description: fmt.Sprintf("<@%d>'s **%s** reached **level %d**!", e.DiscordID, e.CharacterName, e.NewLevel),
		Color:       common.ColorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Previous Level", Value: fmt.Sprintf("%d", e.OldLevel), Inline: true},
			{Name: "New Level", Value: fmt.Sprintf("%d", e.NewLevel), Inline: true},
		},
	}
}
