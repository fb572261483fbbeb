package mocks

import (
	"github.com/go-telegram/bot/models"
)

// UpdateBuilder constructs Telegram updates for handler tests.
type UpdateBuilder struct {
	update *models.Update
}

// NewUpdateBuilder creates an empty builder.
func NewUpdateBuilder() *UpdateBuilder {
	return &UpdateBuilder{update: &models.Update{}}
}

func newMessage(chatID, userID int64, text string) *models.Message {
	return &models.Message{
		ID: 1,
		Chat: models.Chat{
			ID:   chatID,
			Type: "private",
		},
		From: &models.User{
			ID:        userID,
			FirstName: "Test",
			LastName:  "User",
			Username:  "testuser",
		},
		Text: text,
	}
}

// WithMessage sets a plain text message on the update.
func (b *UpdateBuilder) WithMessage(chatID, userID int64, text string) *UpdateBuilder {
	b.update.Message = newMessage(chatID, userID, text)
	return b
}

// WithEditedMessage sets an edited message on the update.
func (b *UpdateBuilder) WithEditedMessage(chatID, userID int64, text string) *UpdateBuilder {
	b.update.EditedMessage = newMessage(chatID, userID, text)
	return b
}

// message returns the update's message, creating an empty one if needed.
func (b *UpdateBuilder) message() *models.Message {
	if b.update.Message == nil {
		b.update.Message = newMessage(0, 0, "")
	}
	return b.update.Message
}

// WithPhoto attaches a photo to the message.
func (b *UpdateBuilder) WithPhoto(fileID string) *UpdateBuilder {
	b.message().Photo = []models.PhotoSize{{
		FileID:       fileID,
		FileUniqueID: fileID + "_unique",
		Width:        1280,
		Height:       960,
	}}
	return b
}

// WithVoice attaches a voice recording to the message.
func (b *UpdateBuilder) WithVoice(fileID string, duration int) *UpdateBuilder {
	b.message().Voice = &models.Voice{
		FileID:       fileID,
		FileUniqueID: fileID + "_unique",
		Duration:     duration,
		MimeType:     "audio/ogg",
	}
	return b
}

// WithSticker attaches a sticker to the message.
func (b *UpdateBuilder) WithSticker(fileID string) *UpdateBuilder {
	b.message().Sticker = &models.Sticker{
		FileID:       fileID,
		FileUniqueID: fileID + "_unique",
	}
	return b
}

// Build returns the constructed update.
func (b *UpdateBuilder) Build() *models.Update {
	return b.update
}

// MessageUpdate creates a plain text message update.
func MessageUpdate(chatID, userID int64, text string) *models.Update {
	return NewUpdateBuilder().WithMessage(chatID, userID, text).Build()
}

// EditedMessageUpdate creates an edited message update.
func EditedMessageUpdate(chatID, userID int64, text string) *models.Update {
	return NewUpdateBuilder().WithEditedMessage(chatID, userID, text).Build()
}

// PhotoUpdate creates a photo message update with no text.
func PhotoUpdate(chatID, userID int64, fileID string) *models.Update {
	return NewUpdateBuilder().WithMessage(chatID, userID, "").WithPhoto(fileID).Build()
}
