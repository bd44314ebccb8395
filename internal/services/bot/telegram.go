package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramGateway implements Gateway on top of the Telegram Bot API.
type TelegramGateway struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramGateway(token string) (*TelegramGateway, error) {
	if token == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &TelegramGateway{bot: bot}, nil
}

// Username returns the bot account name, for startup logging.
func (g *TelegramGateway) Username() string {
	return g.bot.Self.UserName
}

// RegisterWebhook points Telegram's update delivery at webhookURL.
func (g *TelegramGateway) RegisterWebhook(ctx context.Context, webhookURL string) error {
	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return fmt.Errorf("invalid webhook URL: %w", err)
	}
	if _, err := g.bot.Request(wh); err != nil {
		return fmt.Errorf("failed to register webhook: %w", err)
	}
	return nil
}

// DeleteWebhook unregisters the webhook on shutdown.
func (g *TelegramGateway) DeleteWebhook(ctx context.Context) error {
	_, err := g.bot.Request(tgbotapi.DeleteWebhookConfig{})
	return err
}

func (g *TelegramGateway) SendMessage(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := g.bot.Send(msg)
	return err
}

func (g *TelegramGateway) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, keyboard tgbotapi.InlineKeyboardMarkup) (int, error) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdown
	photo.ReplyMarkup = keyboard

	sent, err := g.bot.Send(photo)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

func (g *TelegramGateway) EditCaption(ctx context.Context, chatID int64, messageID int, caption string) error {
	edit := tgbotapi.NewEditMessageCaption(chatID, messageID, caption)
	_, err := g.bot.Send(edit)
	return err
}

func (g *TelegramGateway) AnswerCallback(ctx context.Context, callbackID string) error {
	_, err := g.bot.Request(tgbotapi.NewCallback(callbackID, ""))
	return err
}

func (g *TelegramGateway) SendDocument(ctx context.Context, chatID int64, path, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = caption
	_, err := g.bot.Send(doc)
	return err
}
