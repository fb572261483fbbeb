// Package mocks provides test doubles for the Telegram bot surface.
package mocks

import (
	"context"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// TelegramAPI is the subset of Telegram bot operations the handlers use.
// It lives here rather than in the bot package to avoid an import cycle.
type TelegramAPI interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
}

// SentMessage captures one reply recorded by MockBot.
type SentMessage struct {
	ChatID    any
	Text      string
	ParseMode models.ParseMode
}

// SentChatAction captures one chat action recorded by MockBot.
type SentChatAction struct {
	ChatID any
	Action models.ChatAction
}

var _ TelegramAPI = (*MockBot)(nil)

// MockBot records outgoing Telegram calls and can be told to fail them.
type MockBot struct {
	mu sync.Mutex

	SentMessages    []SentMessage
	SentChatActions []SentChatAction

	// SendMessageError, when set, makes every SendMessage call fail.
	SendMessageError error
	// SendChatActionError, when set, makes every SendChatAction call fail.
	SendChatActionError error

	// NextMessageID is assigned to the next recorded message.
	NextMessageID int
}

// NewMockBot creates a recorder with message IDs starting at 1000.
func NewMockBot() *MockBot {
	return &MockBot{NextMessageID: 1000}
}

// SendMessage records the reply and echoes it back as a Telegram message.
func (m *MockBot) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SendMessageError != nil {
		return nil, m.SendMessageError
	}

	m.SentMessages = append(m.SentMessages, SentMessage{
		ChatID:    params.ChatID,
		Text:      params.Text,
		ParseMode: params.ParseMode,
	})

	msgID := m.NextMessageID
	m.NextMessageID++

	return &models.Message{
		ID:   msgID,
		Chat: models.Chat{ID: chatIDToInt64(params.ChatID)},
		Text: params.Text,
	}, nil
}

// SendChatAction records the chat action.
func (m *MockBot) SendChatAction(_ context.Context, params *bot.SendChatActionParams) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SendChatActionError != nil {
		return false, m.SendChatActionError
	}

	m.SentChatActions = append(m.SentChatActions, SentChatAction{
		ChatID: params.ChatID,
		Action: params.Action,
	})
	return true, nil
}

// Reset drops all recorded calls and clears configured failures.
func (m *MockBot) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SentMessages = nil
	m.SentChatActions = nil
	m.SendMessageError = nil
	m.SendChatActionError = nil
}

// LastSentMessage returns the most recent reply, or nil if none were sent.
func (m *MockBot) LastSentMessage() *SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.SentMessages) == 0 {
		return nil
	}
	return &m.SentMessages[len(m.SentMessages)-1]
}

// SentMessageCount returns how many replies were recorded.
func (m *MockBot) SentMessageCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SentMessages)
}

// SentChatActionCount returns how many chat actions were recorded.
func (m *MockBot) SentChatActionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SentChatActions)
}

// chatIDToInt64 narrows the bot library's any-typed chat ID. Handlers only
// ever pass numeric IDs.
func chatIDToInt64(chatID any) int64 {
	switch v := chatID.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}
