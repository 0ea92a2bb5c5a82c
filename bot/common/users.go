package common

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"exptracker/models"
	"exptracker/service"
)

// InteractionUser returns the invoking user for guild and DM interactions alike
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// InvokerIdentity returns the invoking user's Discord ID and profile
func InvokerIdentity(i *discordgo.InteractionCreate) (int64, models.Profile, error) {
	user := InteractionUser(i)
	if user == nil {
		return 0, models.Profile{}, fmt.Errorf("interaction has no user")
	}

	discordID, err := strconv.ParseInt(user.ID, 10, 64)
	if err != nil {
		return 0, models.Profile{}, fmt.Errorf("invalid discord id %q: %w", user.ID, err)
	}

	profile := models.Profile{
		Username:  user.Username,
		FirstName: user.GlobalName,
	}
	if i.Member != nil && i.Member.Nick != "" {
		profile.FirstName = i.Member.Nick
	}

	return discordID, profile, nil
}

// Options indexes command options by name
func Options(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	byName := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		byName[opt.Name] = opt
	}
	return byName
}

// OptionalString returns a trimmed string option, or nil when absent or blank
func OptionalString(options map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) *string {
	opt, ok := options[name]
	if !ok {
		return nil
	}
	value := opt.StringValue()
	if value == "" {
		return nil
	}
	return &value
}

// EnsureUser registers the invoking user on first contact and returns their Discord ID
func EnsureUser(ctx context.Context, users service.UserService, i *discordgo.InteractionCreate) (int64, error) {
	discordID, profile, err := InvokerIdentity(i)
	if err != nil {
		return 0, NewSystemError(err, "Failed to identify invoking user")
	}
	if _, err := users.GetOrCreateUser(ctx, discordID, profile); err != nil {
		return 0, NewSystemError(err, "Failed to register user")
	}
	return discordID, nil
}
