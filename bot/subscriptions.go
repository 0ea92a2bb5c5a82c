package bot

import (
	"context"

	log "github.com/sirupsen/logrus"

	"exptracker/events"
)

// RegisterBotSubscriptions registers all bot-level event subscriptions
func RegisterBotSubscriptions(bus *events.Bus, announcer *LevelUpAnnouncer) {
	bus.Subscribe(events.EventTypeLevelChanged, func(ctx context.Context, event events.Event) {
		if err := announcer.HandleLevelChanged(ctx, event); err != nil {
			log.WithError(err).Error("Failed to handle level change")
		}
	})

	log.Info("Bot event subscriptions registered successfully")
}
