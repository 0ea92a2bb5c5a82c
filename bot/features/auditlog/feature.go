package auditlog

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"

	"exptracker/bot/common"
	"exptracker/service"
)

type Feature struct {
	userService service.UserService
	logService  service.LogService
}

func New(userService service.UserService, logService service.LogService) *Feature {
	return &Feature{
		userService: userService,
		logService:  logService,
	}
}

// HandleCommand shows the invoking player's most recent log entries
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := common.EnsureUser(ctx, f.userService, i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	limit := int64(common.DefaultLogLimit)
	if opt, ok := common.Options(i.ApplicationCommandData().Options)["limit"]; ok {
		limit = opt.IntValue()
	}

	embed, err := f.recent(ctx, discordID, limit)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.RespondWithEmbed(s, i, embed, true); err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to send log response"), false)
	}
}

func (f *Feature) recent(ctx context.Context, discordID int64, limit int64) (*discordgo.MessageEmbed, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > common.MaxLogLimit {
		limit = common.MaxLogLimit
	}

	entries, err := f.logService.ListRecentLogs(ctx, discordID, int(limit))
	if err != nil {
		return nil, common.FromServiceError(err, "Failed to list log entries")
	}

	embed := &discordgo.MessageEmbed{
		Title: "📖 Star Log",
		Color: common.ColorInfo,
	}
	if len(entries) == 0 {
		embed.Description = "Nothing has happened yet."
		return embed, nil
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, common.FormatLogEntry(e))
	}
	embed.Description = strings.Join(lines, "\n")
	return embed, nil
}
