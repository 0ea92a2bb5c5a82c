package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"exptracker/bot/features/auditlog"
	"exptracker/bot/features/characters"
	"exptracker/bot/features/stars"
	"exptracker/events"
	"exptracker/service"
)

// Config holds bot configuration
type Config struct {
	Token             string
	GuildID           string // Commands are registered globally when empty
	AnnounceChannelID string // Level-ups are not announced when empty
}

type commandHandler interface {
	HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate)
}

type Bot struct {
	config   Config
	session  *discordgo.Session
	handlers map[string]commandHandler
}

func New(config Config, userService service.UserService, ledgerService service.LedgerService, logService service.LogService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	bot := &Bot{
		config:  config,
		session: dg,
		handlers: newCommandHandlers(userService, ledgerService, logService),
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	if config.AnnounceChannelID != "" {
		RegisterBotSubscriptions(eventBus, NewLevelUpAnnouncer(dg, config.AnnounceChannelID))
	} else {
		log.Info("ANNOUNCE_CHANNEL_ID not set, level-ups will not be announced")
	}

	return bot, nil
}

func newCommandHandlers(userService service.UserService, ledgerService service.LedgerService, logService service.LogService) map[string]commandHandler {
	return map[string]commandHandler{
		"character": characters.New(userService, ledgerService, logService),
		"stars":     stars.New(userService, ledgerService),
		"log":       auditlog.New(userService, logService),
	}
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	handler, ok := b.handlers[name]
	if !ok {
		log.Warnf("Received unknown command %q", name)
		return
	}
	handler.HandleCommand(s, i)
}
