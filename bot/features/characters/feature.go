package characters

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"exptracker/bot/common"
	"exptracker/service"
)

type Feature struct {
	userService   service.UserService
	ledgerService service.LedgerService
	logService    service.LogService
}

func New(userService service.UserService, ledgerService service.LedgerService, logService service.LogService) *Feature {
	return &Feature{
		userService:   userService,
		ledgerService: ledgerService,
		logService:    logService,
	}
}

// HandleCommand dispatches the /character subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		common.RespondWithError(s, i, "Please choose a subcommand.")
		return
	}
	sub := data.Options[0]

	discordID, err := common.EnsureUser(ctx, f.userService, i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	embed, err := f.run(ctx, discordID, sub.Name, common.Options(sub.Options))
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.RespondWithEmbed(s, i, embed, false); err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to send character response"), false)
	}
}

func (f *Feature) run(ctx context.Context, discordID int64, subcommand string, opts options) (*discordgo.MessageEmbed, error) {
	switch subcommand {
	case "create":
		return f.create(ctx, discordID, opts)
	case "list":
		return f.list(ctx, discordID)
	case "delete":
		return f.delete(ctx, discordID, opts)
	case "rename":
		return f.rename(ctx, discordID, opts)
	case "dead":
		return f.setDead(ctx, discordID, opts)
	default:
		return nil, common.NewUserError("Unknown subcommand.", fmt.Sprintf("unknown character subcommand %q", subcommand))
	}
}
