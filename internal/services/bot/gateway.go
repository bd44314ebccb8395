package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Gateway is the thin adapter over the chat platform's send/edit/answer
// primitives. No business logic lives behind it.
type Gateway interface {
	// SendMessage sends a plain text reply to a chat.
	SendMessage(ctx context.Context, chatID int64, text string) error

	// SendPhoto sends a photo by URL with a caption and an inline button
	// grid, returning the ID of the sent message.
	SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, keyboard tgbotapi.InlineKeyboardMarkup) (int, error)

	// EditCaption replaces the caption of a previously sent message.
	EditCaption(ctx context.Context, chatID int64, messageID int, caption string) error

	// AnswerCallback acknowledges a button press so the client clears its
	// loading indicator.
	AnswerCallback(ctx context.Context, callbackID string) error

	// SendDocument uploads a local file to the chat as a document.
	SendDocument(ctx context.Context, chatID int64, path, caption string) error
}
