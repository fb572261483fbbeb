// Package bot provides the Telegram bot initialization and handlers.
package bot

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/BulGhost/exchangeRatesOnDate-TelegramBot/internal/config"
	"github.com/BulGhost/exchangeRatesOnDate-TelegramBot/internal/exchange"
	"github.com/BulGhost/exchangeRatesOnDate-TelegramBot/internal/logger"
)

// Bot wraps the Telegram bot with application dependencies.
type Bot struct {
	bot       *bot.Bot
	cfg       *config.Config
	exchanger exchange.Exchanger
	queries   metric.Int64Counter
}

// New creates a new Bot instance.
func New(cfg *config.Config, exchanger exchange.Exchanger) (*Bot, error) {
	b := &Bot{
		cfg:       cfg,
		exchanger: exchanger,
	}

	queries, err := otel.Meter("exchange-rates-bot").Int64Counter(
		"bot.queries",
		metric.WithDescription("Processed rate queries by outcome."),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create queries counter: %w", err)
	}
	b.queries = queries

	opts := []bot.Option{
		bot.WithMiddlewares(b.loggingMiddleware),
		bot.WithDefaultHandler(b.defaultHandler),
	}

	telegramBot, err := bot.New(cfg.TelegramBotToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b.bot = telegramBot
	b.registerHandlers()

	return b, nil
}

// Start begins polling for updates.
func (b *Bot) Start(ctx context.Context) {
	logger.Log.Info().Msg("Bot started polling")
	b.bot.Start(ctx)
}

// registerHandlers sets up command handlers.
func (b *Bot) registerHandlers() {
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, b.handleStart)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, b.handleHelp)
}

// loggingMiddleware logs every update with privacy-hashed identifiers and
// keeps the process serving when a handler panics.
func (b *Bot) loggingMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
		userID := extractUserID(update)
		logUserAction(userID, update)

		defer func() {
			if r := recover(); r != nil {
				logger.Log.Error().
					Any("panic", r).
					Str("user_hash", logger.HashUserID(userID)).
					Msg("Recovered from panic in handler")
			}
		}()

		next(ctx, tgBot, update)
	}
}

// logUserAction logs the user's input.
func logUserAction(userID int64, update *tgmodels.Update) {
	switch {
	case update.Message != nil:
		msg := update.Message
		logger.Log.Info().
			Str("user_hash", logger.HashUserID(userID)).
			Str("chat_hash", logger.HashChatID(msg.Chat.ID)).
			Str("text", logger.SanitizeText(msg.Text)).
			Msg("User input")

	case update.EditedMessage != nil:
		logger.Log.Info().
			Str("user_hash", logger.HashUserID(userID)).
			Str("chat_hash", logger.HashChatID(update.EditedMessage.Chat.ID)).
			Str("text", logger.SanitizeText(update.EditedMessage.Text)).
			Msg("Edited message")
	}
}

// extractUserID gets the user ID from various update types.
func extractUserID(update *tgmodels.Update) int64 {
	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.ID
	}
	if update.EditedMessage != nil && update.EditedMessage.From != nil {
		return update.EditedMessage.From.ID
	}
	return 0
}

// recordQuery increments the processed-queries counter with an outcome label.
func (b *Bot) recordQuery(ctx context.Context, outcome string) {
	if b.queries == nil {
		return
	}
	b.queries.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// defaultHandler runs the rate query pipeline for any non-command message,
// including edited ones.
func (b *Bot) defaultHandler(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleRateQueryCore(ctx, tgBot, update)
}
