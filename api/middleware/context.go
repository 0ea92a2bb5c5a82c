package middleware

import (
	"context"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const (
	ctxRequestID contextKey = "request_id"
	ctxDiscordID contextKey = "discord_id"
	ctxLogger    contextKey = "logger"
)

// RequestIDFromContext returns the request id set by RequestID
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxRequestID).(string); ok {
		return v
	}
	return ""
}

// DiscordIDFromContext returns the authenticated player's Discord ID
func DiscordIDFromContext(ctx context.Context) (int64, bool) {
	v, ok := ctx.Value(ctxDiscordID).(int64)
	return v, ok
}

// WithDiscordID injects the authenticated player's Discord ID into the context
func WithDiscordID(ctx context.Context, discordID int64) context.Context {
	ctx = context.WithValue(ctx, ctxDiscordID, discordID)
	return WithLogger(ctx, Logger(ctx).WithField("discord_id", discordID))
}

// Logger returns the request scoped log entry
func Logger(ctx context.Context) *log.Entry {
	if v, ok := ctx.Value(ctxLogger).(*log.Entry); ok {
		return v
	}
	return log.NewEntry(log.StandardLogger())
}

// WithLogger stores a log entry in the context
func WithLogger(ctx context.Context, entry *log.Entry) context.Context {
	return context.WithValue(ctx, ctxLogger, entry)
}
