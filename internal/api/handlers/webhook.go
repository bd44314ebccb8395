package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tubegrab/tubegrab/internal/services/bot"
	"github.com/tubegrab/tubegrab/internal/utils"
)

// WebhookHandler receives Telegram update deliveries. The bot token doubles
// as the path secret: only Telegram knows the full callback URL.
type WebhookHandler struct {
	handler *bot.Handler
	token   string
}

func NewWebhookHandler(handler *bot.Handler, token string) *WebhookHandler {
	return &WebhookHandler{
		handler: handler,
		token:   token,
	}
}

// Receive accepts one update and acknowledges immediately; the update is
// handled on its own goroutine so a slow download never blocks Telegram's
// delivery loop. The goroutine gets a fresh context because the request
// context dies with the response.
func (h *WebhookHandler) Receive(c *gin.Context) {
	if c.Param("token") != h.token {
		c.Status(http.StatusForbidden)
		return
	}

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.LogWarn(c.Request.Context(), "Discarding malformed update", utils.Fields{
			"error": err.Error(),
		})
		c.Status(http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	if correlationID := utils.GetCorrelationID(c.Request.Context()); correlationID != "" {
		ctx = utils.WithCorrelationID(ctx, correlationID)
	}

	go h.handler.HandleUpdate(ctx, update)

	c.Status(http.StatusOK)
}
