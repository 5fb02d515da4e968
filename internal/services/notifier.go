package services

import (
	"fmt"
	"html"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"callcenter/internal/models"
)

// Notifier delivers short HTML messages to a chat.
type Notifier interface {
	Notify(chatID int64, text string) error
}

type TelegramNotifier struct {
	bot *tgbotapi.BotAPI
}

// NewTelegramNotifier returns nil (a valid no-op notifier) when token is empty.
func NewTelegramNotifier(token string) (*TelegramNotifier, error) {
	if token == "" {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	log.Printf("[tg] authorized as @%s", bot.Self.UserName)
	return &TelegramNotifier{bot: bot}, nil
}

func (t *TelegramNotifier) Notify(chatID int64, text string) error {
	if t == nil || t.bot == nil || chatID == 0 {
		log.Printf("[tg][skip] bot or chatID empty (bot? %v chatID=%d)", t != nil && t.bot != nil, chatID)
		return nil
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("[tg][send][err] chatID=%d: %v", chatID, err)
		return err
	}
	return nil
}

func formatTask(prefix string, t *models.Task) string {
	due := "—"
	if t.DueDate != "" {
		due = t.DueDate
	}
	msg := prefix + "\n" +
		"• <b>" + html.EscapeString(t.RetailerName) + "</b> (" + html.EscapeString(t.RetailerID) + ")\n" +
		"• Type: " + html.EscapeString(t.TaskType) + "\n" +
		"• Status: <code>" + string(t.Status) + "</code>\n" +
		"• Priority: <code>" + string(t.Priority) + "</code>\n" +
		"• Due: <code>" + due + "</code>"
	if t.Outcome != nil {
		msg += "\n• Outcome: <code>" + string(*t.Outcome) + "</code>"
	}
	if t.Comment != nil {
		msg += "\n• Comment: " + html.EscapeString(*t.Comment)
	}
	return msg
}
