package notify

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"taskmanager/internal/model"
	"taskmanager/internal/timeutil"
)

// Telegram forwards due reminders to a Telegram chat. It is an optional
// observer, wired only when a bot token is configured; delivery happens
// synchronously inside the sweep like any other observer. Send failures
// are logged, never surfaced, so one slow chat cannot break a sweep.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Telegram{api: api, chatID: chatID}, nil
}

func (t *Telegram) OnReminderDue(reminder *model.Reminder, taskID string) {
	when := "unknown time"
	if reminder.ReminderTime != nil {
		when = timeutil.FormatDisplay(*reminder.ReminderTime)
	}
	text := fmt.Sprintf("Reminder for task %s (%s)", taskID, when)
	if reminder.Message != "" {
		text += ": " + reminder.Message
	}

	if _, err := t.api.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		log.Printf("notify: telegram send: %v", err)
	}
}
