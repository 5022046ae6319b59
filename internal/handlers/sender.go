package handlers

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSender отправляет дайджесты напоминаний в чат группы.
// Реализует reminder.Sender.
type TelegramSender struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramSender(bot *tgbotapi.BotAPI) *TelegramSender {
	return &TelegramSender{bot: bot}
}

// Send шлёт текст в группу. Идентификатор группы — chat ID строкой.
func (s *TelegramSender) Send(group, text string) error {
	chatID, err := strconv.ParseInt(group, 10, 64)
	if err != nil {
		return fmt.Errorf("некорректный идентификатор группы %q: %w", group, err)
	}
	_, err = s.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
