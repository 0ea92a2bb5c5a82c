package characters

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"exptracker/bot/common"
	"exptracker/models"
)

type options = map[string]*discordgo.ApplicationCommandInteractionDataOption

func (f *Feature) create(ctx context.Context, discordID int64, opts options) (*discordgo.MessageEmbed, error) {
	name, ok := opts["name"]
	if !ok {
		return nil, common.NewUserError("Please provide a name.", "missing name option")
	}

	var stars int64
	if opt, ok := opts["stars"]; ok {
		stars = opt.IntValue()
	}
	var dead bool
	if opt, ok := opts["dead"]; ok {
		dead = opt.BoolValue()
	}

	character, err := f.ledgerService.CreateCharacter(ctx, discordID, name.StringValue(), stars, dead)
	if err != nil {
		return nil, common.FromServiceError(err, "Failed to create character")
	}

	return buildCharacterEmbed("✨ Character Created", character, common.ColorSuccess), nil
}

func (f *Feature) list(ctx context.Context, discordID int64) (*discordgo.MessageEmbed, error) {
	characters, err := f.logService.ListCharacters(ctx, discordID)
	if err != nil {
		return nil, common.FromServiceError(err, "Failed to list characters")
	}
	return buildCharacterListEmbed(characters), nil
}

func (f *Feature) delete(ctx context.Context, discordID int64, opts options) (*discordgo.MessageEmbed, error) {
	characterID, err := characterOption(opts)
	if err != nil {
		return nil, err
	}

	character, err := f.ledgerService.DeleteCharacter(ctx, discordID, characterID)
	if err != nil {
		return nil, common.FromServiceError(err, "Failed to delete character")
	}

	return buildCharacterEmbed("🗑️ Character Deleted", character, common.ColorDanger), nil
}

func (f *Feature) rename(ctx context.Context, discordID int64, opts options) (*discordgo.MessageEmbed, error) {
	characterID, err := characterOption(opts)
	if err != nil {
		return nil, err
	}
	nameOpt, ok := opts["name"]
	if !ok {
		return nil, common.NewUserError("Please provide a new name.", "missing name option")
	}
	name := nameOpt.StringValue()

	character, err := f.ledgerService.UpdateCharacter(ctx, discordID, characterID, models.CharacterUpdate{Name: &name})
	if err != nil {
		return nil, common.FromServiceError(err, "Failed to rename character")
	}

	return buildCharacterEmbed("✏️ Character Renamed", character, common.ColorInfo), nil
}

func (f *Feature) setDead(ctx context.Context, discordID int64, opts options) (*discordgo.MessageEmbed, error) {
	characterID, err := characterOption(opts)
	if err != nil {
		return nil, err
	}
	dead := true
	if opt, ok := opts["dead"]; ok {
		dead = opt.BoolValue()
	}

	character, err := f.ledgerService.UpdateCharacter(ctx, discordID, characterID, models.CharacterUpdate{Dead: &dead})
	if err != nil {
		return nil, common.FromServiceError(err, "Failed to update character")
	}

	title := "💀 Character Fallen"
	if !character.Dead {
		title = "❤️ Character Revived"
	}
	return buildCharacterEmbed(title, character, common.ColorWarning), nil
}

func characterOption(opts options) (int64, error) {
	opt, ok := opts["character"]
	if !ok {
		return 0, common.NewUserError("Please choose a character.", "missing character option")
	}
	return opt.IntValue(), nil
}
