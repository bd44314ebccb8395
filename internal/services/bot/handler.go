package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tubegrab/tubegrab/internal/models"
	"github.com/tubegrab/tubegrab/internal/services/downloader"
	"github.com/tubegrab/tubegrab/internal/services/extractor"
	"github.com/tubegrab/tubegrab/internal/services/menu"
	"github.com/tubegrab/tubegrab/internal/services/session"
	"github.com/tubegrab/tubegrab/internal/utils"
)

// JobRunner executes one download job and hands back the scoped output file.
type JobRunner interface {
	Run(ctx context.Context, job *models.DownloadJob) (*downloader.Result, error)
}

// Handler routes inbound updates: the start command, plain-text link
// submissions, and quality-selection button presses. A failure in one
// conversation never escapes its handler.
type Handler struct {
	gateway   Gateway
	extractor extractor.Extractor
	sessions  session.Store
	runner    JobRunner
}

func NewHandler(gateway Gateway, ext extractor.Extractor, sessions session.Store, runner JobRunner) *Handler {
	return &Handler{
		gateway:   gateway,
		extractor: ext,
		sessions:  sessions,
		runner:    runner,
	}
}

// HandleUpdate dispatches a single update by event shape. It is safe to call
// concurrently; each webhook delivery runs in its own goroutine.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			utils.LogError(ctx, "Panic while handling update", utils.NewInternalError(fmt.Errorf("%v", r)))
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		if update.Message.Command() == "start" {
			h.handleStart(ctx, update.Message)
		}
	case update.Message != nil && update.Message.Text != "":
		h.handleLink(ctx, update.Message)
	}
}

func (h *Handler) handleStart(ctx context.Context, message *tgbotapi.Message) {
	ctx = utils.WithChatID(ctx, message.Chat.ID)
	if err := h.gateway.SendMessage(ctx, message.Chat.ID, msgGreeting); err != nil {
		utils.LogError(ctx, "Failed to send greeting", err)
	}
}

func (h *Handler) handleLink(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	ctx = utils.WithChatID(ctx, chatID)
	url := strings.TrimSpace(message.Text)

	if !h.extractor.IsSupportedURL(url) {
		utils.LogDebug(ctx, "Rejected unsupported link", utils.Fields{"text": url})
		h.reply(ctx, chatID, msgInvalidLink)
		return
	}

	info, err := h.extractor.FetchInfo(ctx, url)
	if err != nil {
		utils.LogError(ctx, "Metadata fetch failed", utils.NewExtractionError(err), utils.Fields{"url": url})
		h.reply(ctx, chatID, msgFetchFailed)
		return
	}

	if err := h.sessions.SetPendingURL(ctx, chatID, url); err != nil {
		utils.LogError(ctx, "Session write failed", utils.NewSessionError(err))
		h.reply(ctx, chatID, msgFetchFailed)
		return
	}

	caption := fmt.Sprintf("*%s*\n⏱ Duration: %s\n\n👇 Select quality",
		info.Title, utils.FormatDuration(info.DurationSeconds))

	if _, err := h.gateway.SendPhoto(ctx, chatID, info.ThumbnailURL, caption, menu.Keyboard()); err != nil {
		utils.LogError(ctx, "Failed to send quality prompt", err, utils.Fields{"url": url})
	}
}

func (h *Handler) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	// Acknowledge first so the client clears its loading indicator even if
	// the job fails.
	if err := h.gateway.AnswerCallback(ctx, callback.ID); err != nil {
		utils.LogWarn(ctx, "Failed to answer callback", utils.Fields{"error": err.Error()})
	}

	if callback.Message == nil {
		utils.LogWarn(ctx, "Callback without originating message, dropping")
		return
	}

	chatID := callback.Message.Chat.ID
	messageID := callback.Message.MessageID
	ctx = utils.WithChatID(ctx, chatID)

	url, err := h.sessions.GetPendingURL(ctx, chatID)
	if err != nil || url == "" {
		if err != nil {
			utils.LogError(ctx, "Session read failed", utils.NewSessionError(err))
		} else {
			utils.LogWarn(ctx, "Button press with no pending URL")
		}
		h.editCaption(ctx, chatID, messageID, msgDownloadErr)
		return
	}

	h.editCaption(ctx, chatID, messageID, msgStarting)

	job := downloader.NewJob(chatID, messageID, url, callback.Data)
	ctx = utils.WithJobID(ctx, job.JobID)

	result, err := h.runner.Run(ctx, job)
	if err != nil {
		h.editCaption(ctx, chatID, messageID, captionForError(err))
		return
	}
	defer result.Close()

	if err := h.gateway.SendDocument(ctx, chatID, result.Path, msgComplete); err != nil {
		utils.LogError(ctx, "Delivery failed", utils.NewDeliveryError(err), utils.Fields{
			"path": result.Path,
			"size": result.Size,
		})
		h.editCaption(ctx, chatID, messageID, msgDownloadErr)
		return
	}

	utils.LogInfo(ctx, "Job delivered", utils.Fields{"size": result.Size})
}

func captionForError(err error) string {
	var appErr *utils.AppError
	if errors.As(err, &appErr) && appErr.Code == utils.ErrorCodeFileTooLarge {
		return msgFileTooLarge
	}
	return msgDownloadErr
}

func (h *Handler) reply(ctx context.Context, chatID int64, text string) {
	if err := h.gateway.SendMessage(ctx, chatID, text); err != nil {
		utils.LogError(ctx, "Failed to send reply", err)
	}
}

func (h *Handler) editCaption(ctx context.Context, chatID int64, messageID int, caption string) {
	if err := h.gateway.EditCaption(ctx, chatID, messageID, caption); err != nil {
		utils.LogWarn(ctx, "Failed to edit status caption", utils.Fields{"error": err.Error()})
	}
}
