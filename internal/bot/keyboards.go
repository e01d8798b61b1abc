package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/art-shop-bot/internal/chrome"
)

// mainReplyKeyboard Нижняя панель с разделами сайта, по две кнопки в ряд
func mainReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{}
	var row []tgbotapi.KeyboardButton
	for _, s := range chrome.Sections {
		row = append(row, tgbotapi.NewKeyboardButton(s.Label))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard:       rows,
	}
}
