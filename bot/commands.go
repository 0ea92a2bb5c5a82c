package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"exptracker/bot/common"
)

func characterOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "character",
		Description: description,
		Required:    true,
		MinValue:    floatPtr(1),
	}
}

func reasonOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "reason",
		Description: "Why the stars changed",
		Required:    false,
		MaxLength:   500,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

// commandDefinitions returns every slash command the bot serves
func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "character",
			Description: "Create and manage your characters",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Create a new character",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Character name",
							Required:    true,
							MaxLength:   255,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "stars",
							Description: "Stars the character already earned (not taken from your pool)",
							Required:    false,
							MinValue:    floatPtr(0),
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "dead",
							Description: "Whether the character is already dead",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List your characters",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete a character",
					Options: []*discordgo.ApplicationCommandOption{
						characterOption("ID of the character to delete"),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "rename",
					Description: "Rename a character",
					Options: []*discordgo.ApplicationCommandOption{
						characterOption("ID of the character to rename"),
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "New name",
							Required:    true,
							MaxLength:   255,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "dead",
					Description: "Mark a character as dead or alive",
					Options: []*discordgo.ApplicationCommandOption{
						characterOption("ID of the character"),
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "dead",
							Description: "Dead (default) or alive",
							Required:    false,
						},
					},
				},
			},
		},
		{
			Name:        "stars",
			Description: "Spend and adjust stars",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "spend",
					Description: "Move stars from your pool to a character (negative refunds)",
					Options: []*discordgo.ApplicationCommandOption{
						characterOption("ID of the character"),
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "Stars to spend",
							Required:    true,
						},
						reasonOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "adjust",
					Description: "Add stars to or remove stars from your pool",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "Stars to add (negative removes)",
							Required:    true,
						},
						reasonOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Set a character's stars directly without touching your pool",
					Options: []*discordgo.ApplicationCommandOption{
						characterOption("ID of the character"),
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "stars",
							Description: "New star total",
							Required:    true,
							MinValue:    floatPtr(0),
						},
						reasonOption(),
					},
				},
			},
		},
		{
			Name:        "log",
			Description: "Show your recent star log",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "limit",
					Description: fmt.Sprintf("Number of entries (default %d)", common.DefaultLogLimit),
					Required:    false,
					MinValue:    floatPtr(1),
					MaxValue:    common.MaxLogLimit,
				},
			},
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	commands := commandDefinitions()

	if _, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.config.GuildID, commands); err != nil {
		return fmt.Errorf("cannot register commands: %w", err)
	}

	log.WithFields(log.Fields{
		"guild_id": b.config.GuildID,
		"count":    len(commands),
	}).Info("Registered slash commands")
	return nil
}
