package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"exptracker/auth"
	"exptracker/cmd"
	"exptracker/config"
	"exptracker/database"
)

func main() {
	// A missing .env file is fine, the environment is used as is
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded .env file")
	}

	// Check for migration subcommands
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := handleMigrationCommand(); err != nil {
			log.Fatal("Migration error: ", err)
		}
		return
	}

	// Check for token subcommand
	if len(os.Args) > 1 && os.Args[1] == "token" {
		if err := handleTokenCommand(); err != nil {
			log.Fatal("Token error: ", err)
		}
		return
	}

	// Normal operation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	if err := cmd.Run(ctx); err != nil {
		log.Fatal("Application error: ", err)
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: exptracker migrate [up|down|status] [args...]")
	}

	command := os.Args[2]
	switch command {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}

// handleTokenCommand mints a development access token for a Discord ID
func handleTokenCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: exptracker token <discord-id> [username]")
	}

	discordID, err := strconv.ParseInt(os.Args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid discord id %q: %w", os.Args[2], err)
	}

	identity := auth.Identity{DiscordID: discordID}
	if len(os.Args) > 3 {
		identity.Username = os.Args[3]
	}

	cfg := config.Get()
	token, err := auth.MintAccessToken(cfg.TokenConfig(), time.Now(), identity)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
