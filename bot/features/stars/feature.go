package stars

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"exptracker/bot/common"
	"exptracker/service"
)

type options = map[string]*discordgo.ApplicationCommandInteractionDataOption

type Feature struct {
	userService   service.UserService
	ledgerService service.LedgerService
}

func New(userService service.UserService, ledgerService service.LedgerService) *Feature {
	return &Feature{
		userService:   userService,
		ledgerService: ledgerService,
	}
}

// HandleCommand dispatches the /stars subcommands
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
		common.HandleError(s, i, common.NewSystemError(err, "Failed to send stars response"), false)
	}
}

func (f *Feature) run(ctx context.Context, discordID int64, subcommand string, opts options) (*discordgo.MessageEmbed, error) {
	switch subcommand {
	case "spend":
		return f.spend(ctx, discordID, opts)
	case "adjust":
		return f.adjust(ctx, discordID, opts)
	case "set":
		return f.set(ctx, discordID, opts)
	default:
		return nil, common.NewUserError("Unknown subcommand.", fmt.Sprintf("unknown stars subcommand %q", subcommand))
	}
}
