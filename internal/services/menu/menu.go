// Package menu holds the fixed quality/format catalog offered for every
// video. The menu does not depend on what the source can actually deliver;
// an unsatisfiable height fails at download time instead.
package menu

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tubegrab/tubegrab/internal/models"
)

var catalog = []models.QualityOption{
	{Label: "🎥 4K", SelectionKey: "2160"},
	{Label: "🎥 1440p", SelectionKey: "1440"},
	{Label: "🎥 1080p", SelectionKey: "1080"},
	{Label: "🎥 720p", SelectionKey: "720"},
	{Label: "🎥 480p", SelectionKey: "480"},
	{Label: "🎧 MP3 320kbps", SelectionKey: "mp3_320"},
	{Label: "🎧 MP3 128kbps", SelectionKey: "mp3_128"},
}

// Catalog returns the ordered list of all 7 quality options.
func Catalog() []models.QualityOption {
	out := make([]models.QualityOption, len(catalog))
	copy(out, catalog)
	return out
}

// Rows arranges the catalog for display: video options paired, the odd 480p
// on its own row, audio options as the final pair.
func Rows() [][]models.QualityOption {
	return [][]models.QualityOption{
		{catalog[0], catalog[1]},
		{catalog[2], catalog[3]},
		{catalog[4]},
		{catalog[5], catalog[6]},
	}
}

// Keyboard builds the inline button grid, each button payload carrying the
// option's selection key.
func Keyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, row := range Rows() {
		var buttons []tgbotapi.InlineKeyboardButton
		for _, opt := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(opt.Label, opt.SelectionKey))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
