package characters

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"exptracker/bot/common"
	"exptracker/models"
)

func buildCharacterEmbed(title string, c *models.Character, color int) *discordgo.MessageEmbed {
	progress := c.Progress()

	status := "Alive"
	if c.Dead {
		status = "💀 Dead"
	}

	nextLevel := "Max level"
	if remaining := progress.StarsToNextLevel(); remaining > 0 {
		nextLevel = fmt.Sprintf("%s ⭐", common.FormatStars(remaining))
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: fmt.Sprintf("**%s** `#%d`", c.Name, c.ID),
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Progress", Value: common.FormatProgress(progress), Inline: false},
			{Name: "Total Stars", Value: common.FormatStars(c.Stars), Inline: true},
			{Name: "Next Level", Value: nextLevel, Inline: true},
			{Name: "Status", Value: status, Inline: true},
		},
	}
}

func buildCharacterListEmbed(characters []*models.Character) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "📜 Your Characters",
		Color: common.ColorPrimary,
	}

	if len(characters) == 0 {
		embed.Description = "You have no characters yet. Use `/character create` to make one."
		return embed
	}

	lines := make([]string, 0, len(characters))
	for _, c := range characters {
		lines = append(lines, common.FormatCharacterLine(c))
	}
	embed.Description = strings.Join(lines, "\n")
	return embed
}
