package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"

	"exptracker/api"
	"exptracker/api/routes"
	"exptracker/bot"
	"exptracker/config"
	"exptracker/database"
	"exptracker/events"
	"exptracker/metrics"
	"exptracker/repository"
	"exptracker/service"
)

// SetupLogging configures the global logger from the configuration
func SetupLogging(cfg *config.Config) {
	log.SetOutput(os.Stdout)
	if cfg.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("Unknown LOG_LEVEL, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	SetupLogging(cfg)

	log.Info("Starting exptracker...")

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, database.ConstructDatabaseURL(cfg.DatabaseURL, cfg.DatabaseName))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("Closing database connection...")
		db.Close()
	}()
	log.Info("Database connection established successfully")

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	ledgerMetrics := metrics.NewLedgerMetrics(registry)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	// Initialize event bus and unit of work factory
	eventBus := events.NewBus()
	metrics.NewEventMetrics(registry).Subscribe(eventBus)
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	userService := service.NewUserService(uowFactory, cfg.StartingStars)
	ledgerService := service.NewLedgerService(uowFactory, ledgerMetrics)
	logService := service.NewLogService(uowFactory)
	log.Info("Services initialized successfully")

	// Initialize Discord bot
	var discordBot *bot.Bot
	if cfg.DiscordToken != "" {
		log.Info("Initializing Discord bot...")
		discordBot, err = bot.New(bot.Config{
			Token:             cfg.DiscordToken,
			GuildID:           cfg.GuildID,
			AnnounceChannelID: cfg.AnnounceChannelID,
		}, userService, ledgerService, logService, eventBus)
		if err != nil {
			return fmt.Errorf("failed to initialize Discord bot: %w", err)
		}
		defer func() {
			log.Info("Shutting down Discord bot...")
			if err := discordBot.Close(); err != nil {
				log.WithError(err).Error("Error closing Discord bot")
			}
		}()
		log.Info("Discord bot initialized successfully")
	} else {
		log.Info("DISCORD_TOKEN not set, running without Discord bot")
	}

	// Serve the HTTP API until shutdown
	router := routes.NewRouter(routes.Dependencies{
		DB:          db,
		Token:       cfg.TokenConfig(),
		Users:       userService,
		Ledger:      ledgerService,
		Logs:        logService,
		HTTPMetrics: httpMetrics,
		Gatherer:    registry,
	})

	log.WithField("environment", cfg.Environment).Info("exptracker is running")
	if err := api.NewServer(cfg.HTTPAddr, router).Run(ctx); err != nil {
		return err
	}

	log.Info("Shutdown completed")
	return nil
}
