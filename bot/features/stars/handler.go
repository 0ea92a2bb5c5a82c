package stars

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"exptracker/bot/common"
)

func (f *Feature) spend(ctx context.Context, discordID int64, opts options) (*discordgo.MessageEmbed, error) {
	characterID, err := intOption(opts, "character", "Please choose a character.")
	if err != nil {
		return nil, err
	}
	amount, err := intOption(opts, "amount", "Please provide an amount.")
	if err != nil {
		return nil, err
	}

	result, err := f.ledgerService.SpendStars(ctx, discordID, characterID, amount, common.OptionalString(opts, "reason"))
	if err != nil {
		return nil, common.FromServiceError(err, "Failed to spend stars")
	}

	title := "⭐ Stars Spent"
	if result.SpentStars < 0 {
		title = "↩️ Stars Refunded"
	}

	return &discordgo.MessageEmbed{
		Title: title,
		Description: fmt.Sprintf("%s ⭐ on **%s** `#%d`",
			common.FormatSignedStars(result.SpentStars), result.Character.Name, result.Character.ID),
		Color: common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Progress", Value: common.FormatProgress(result.Character.Progress()), Inline: false},
			{Name: "Character Stars", Value: common.FormatStars(result.Character.Stars), Inline: true},
			{Name: "Unspent Stars", Value: common.FormatStars(result.User.UnspentStars), Inline: true},
		},
	}, nil
}

func (f *Feature) adjust(ctx context.Context, discordID int64, opts options) (*discordgo.MessageEmbed, error) {
	amount, err := intOption(opts, "amount", "Please provide an amount.")
	if err != nil {
		return nil, err
	}

	result, err := f.ledgerService.AdjustPoolStars(ctx, discordID, amount, common.OptionalString(opts, "reason"))
	if err != nil {
		return nil, common.FromServiceError(err, "Failed to adjust stars")
	}

	return &discordgo.MessageEmbed{
		Title:       "🏦 Pool Adjusted",
		Description: fmt.Sprintf("%s ⭐", common.FormatSignedStars(result.AddedStars)),
		Color:       common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Unspent Stars", Value: common.FormatStars(result.User.UnspentStars), Inline: true},
		},
	}, nil
}

func (f *Feature) set(ctx context.Context, discordID int64, opts options) (*discordgo.MessageEmbed, error) {
	characterID, err := intOption(opts, "character", "Please choose a character.")
	if err != nil {
		return nil, err
	}
	stars, err := intOption(opts, "stars", "Please provide a star count.")
	if err != nil {
		return nil, err
	}

	character, err := f.ledgerService.UpdateCharacterStars(ctx, discordID, characterID, stars, common.OptionalString(opts, "reason"))
	if err != nil {
		return nil, common.FromServiceError(err, "Failed to set character stars")
	}

	return &discordgo.MessageEmbed{
		Title:       "🛠️ Stars Set",
		Description: fmt.Sprintf("**%s** `#%d` now has %s ⭐", character.Name, character.ID, common.FormatStars(character.Stars)),
		Color:       common.ColorWarning,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Progress", Value: common.FormatProgress(character.Progress()), Inline: false},
		},
	}, nil
}

func intOption(opts options, name, missing string) (int64, error) {
	opt, ok := opts[name]
	if !ok {
		return 0, common.NewUserError(missing, fmt.Sprintf("missing %s option", name))
	}
	return opt.IntValue(), nil
}
