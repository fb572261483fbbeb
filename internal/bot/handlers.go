package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/BulGhost/exchangeRatesOnDate-TelegramBot/internal/exchange"
	"github.com/BulGhost/exchangeRatesOnDate-TelegramBot/internal/logger"
)

// handleStart handles the /start command.
func (b *Bot) handleStart(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
	b.sendInstructionCore(ctx, tgBot, update)
}

// handleHelp handles the /help command.
func (b *Bot) handleHelp(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
	b.sendInstructionCore(ctx, tgBot, update)
}

// sendInstructionCore is the testable implementation of /start and /help.
func (b *Bot) sendInstructionCore(ctx context.Context, tg TelegramAPI, update *models.Update) {
	if update.Message == nil {
		return
	}

	b.sendText(ctx, tg, update.Message.Chat.ID, msgInstruction)
}

// handleRateQueryCore is the testable implementation of the rate query
// pipeline. One incoming message produces at most two replies and every
// failure path terminates the message's processing.
func (b *Bot) handleRateQueryCore(ctx context.Context, tg TelegramAPI, update *models.Update) {
	msg := update.Message
	if msg == nil {
		msg = update.EditedMessage
	}
	if msg == nil {
		return
	}

	chatID := msg.Chat.ID
	if _, err := tg.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	}); err != nil {
		logger.Log.Debug().Err(err).Msg("Failed to send typing action")
	}

	query, err := b.parseMessage(msg)
	if err != nil {
		logger.Log.Debug().
			Err(err).
			Str("chat_hash", logger.HashChatID(chatID)).
			Msg("Message rejected")
		b.recordQuery(ctx, "rejected")
		b.sendText(ctx, tg, chatID, rejectionMessage(err))
		b.sendText(ctx, tg, chatID, msgInstruction)
		return
	}

	rate, err := b.exchanger.Rate(ctx, b.cfg.BaseCurrency, query.TargetCurrency, query.Date)
	if err != nil {
		b.handleFetchFailure(ctx, tg, chatID, query, err)
		return
	}

	reply := fmt.Sprintf(replyTemplate,
		query.Date.Format(replyDateLayout),
		query.TargetCurrency,
		FormatRate(rate),
		b.cfg.BaseCurrency,
	)
	b.recordQuery(ctx, "ok")
	b.sendText(ctx, tg, chatID, reply)
}

// parseMessage rejects non-text payloads, then delegates to ParseRateQuery.
func (b *Bot) parseMessage(msg *models.Message) (RateQuery, error) {
	if msg.Text == "" {
		return RateQuery{}, ErrNotText
	}
	return ParseRateQuery(msg.Text, time.Now())
}

// handleFetchFailure maps provider errors to user replies. Transport failures
// get a generic "try later" text; everything else surfaces the provider's
// verdict. Neither is followed by the instruction text since the input itself
// was valid.
func (b *Bot) handleFetchFailure(ctx context.Context, tg TelegramAPI, chatID int64, query RateQuery, err error) {
	switch {
	case errors.Is(err, exchange.ErrUnavailable):
		logger.Log.Warn().
			Err(err).
			Str("currency", query.TargetCurrency).
			Str("chat_hash", logger.HashChatID(chatID)).
			Msg("Rate service unavailable")
		b.recordQuery(ctx, "unavailable")
		b.sendText(ctx, tg, chatID, msgServiceUnavailable)

	case errors.Is(err, exchange.ErrNoData):
		logger.Log.Info().
			Str("currency", query.TargetCurrency).
			Str("date", query.Date.Format(replyDateLayout)).
			Msg("No rate data for query")
		b.recordQuery(ctx, "no_data")
		b.sendText(ctx, tg, chatID, msgNoData)

	case errors.Is(err, exchange.ErrDateInFuture):
		b.recordQuery(ctx, "rejected")
		b.sendText(ctx, tg, chatID, msgDateInFuture)

	case errors.Is(err, exchange.ErrUnsupportedCurrency):
		b.recordQuery(ctx, "rejected")
		b.sendText(ctx, tg, chatID, msgUnknownCurrency)

	default:
		logger.Log.Error().
			Err(err).
			Str("currency", query.TargetCurrency).
			Msg("Unexpected rate lookup error")
		b.recordQuery(ctx, "error")
		b.sendText(ctx, tg, chatID, msgServiceUnavailable)
	}
}

func (b *Bot) sendText(ctx context.Context, tg TelegramAPI, chatID int64, text string) {
	_, err := tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("chat_hash", logger.HashChatID(chatID)).
			Msg("Failed to send message")
	}
}
