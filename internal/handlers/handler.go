// Package handlers — командная поверхность бота.
// Ошибки компонентов наружу не выходят: каждая превращается в текстовый
// ответ пользователю с подсказкой, как ввести правильно.
package handlers

import (
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/blueberryyyy11/vormizduxt/internal/homework"
	"github.com/blueberryyyy11/vormizduxt/internal/timetable"
)

// BotAPI — часть клиента Telegram, нужная обработчикам.
// В тестах подменяется на фальшивку-рекордер.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Handler держит зависимости командной поверхности.
// Обновления Telegram обрабатываются последовательно в одной горутине,
// поэтому карта черновиков не требует блокировок.
type Handler struct {
	bot       BotAPI
	homework  *homework.Store
	timetable *timetable.Store
	now       func() time.Time
	drafts    map[chatUser]*draft
}

func New(bot BotAPI, hw *homework.Store, tt *timetable.Store, now func() time.Time) *Handler {
	return &Handler{
		bot:       bot,
		homework:  hw,
		timetable: tt,
		now:       now,
		drafts:    make(map[chatUser]*draft),
	}
}

const helpText = `Study Bot

Домашка:
/hw_add Предмет Задание Срок — добавить (или без аргументов, по шагам)
/hw_list — список
/hw_remove Предмет Номер — удалить
/hw_today — на сегодня
/hw_overdue — просроченное
/hw_stats — статистика
/hw_clean — убрать задания старше 30 дней

Расписание:
/schedule — пары сегодня
/schedule_week — вся неделя
/schedule_set {JSON} — задать расписание целиком
/next — ближайшие пары

Напоминания:
/reminders on|off
/remind_times HH:MM HH:MM

Срок пишется как: 2025-03-15, 15-03, +3, завтра, через неделю или tbd.`

// ProcessMessage — основной обработчик входящих сообщений.
func (h *Handler) ProcessMessage(update *tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	msg := update.Message
	chatID := msg.Chat.ID
	group := strconv.FormatInt(chatID, 10)
	text := strings.TrimSpace(msg.Text)

	key := chatUser{ChatID: chatID, UserID: msg.From.ID}

	// Любое сообщение регистрирует группу в списке для планировщика:
	// домашку ведут и без расписания, а напоминания должны приходить и им.
	if _, err := h.timetable.Config(group); err != nil {
		log.Printf("Не удалось зарегистрировать группу %s: %v", group, err)
	}

	// Команда /cancel обрывает пошаговый диалог в любом месте.
	if msg.IsCommand() && msg.Command() == "cancel" {
		if _, ok := h.drafts[key]; ok {
			delete(h.drafts, key)
			h.reply(chatID, "Ок, отменил.")
		} else {
			h.reply(chatID, "Нечего отменять.")
		}
		return
	}

	// Пользователь в середине пошагового добавления.
	if d, ok := h.drafts[key]; ok && !msg.IsCommand() {
		h.processDraftMessage(chatID, group, key, d, text)
		return
	}

	if !msg.IsCommand() {
		return
	}

	args := strings.Fields(msg.CommandArguments())
	switch msg.Command() {
	case "start", "help":
		h.reply(chatID, helpText)
	case "hw_add":
		h.hwAdd(chatID, group, key, args)
	case "hw_list":
		h.hwList(chatID, group)
	case "hw_remove":
		h.hwRemove(chatID, group, args)
	case "hw_today":
		h.hwToday(chatID, group)
	case "hw_overdue":
		h.hwOverdue(chatID, group)
	case "hw_stats":
		h.hwStats(chatID, group)
	case "hw_clean":
		h.hwClean(chatID, group)
	case "schedule", "schedule_today":
		h.scheduleToday(chatID, group)
	case "schedule_week":
		h.scheduleWeek(chatID, group)
	case "schedule_set":
		h.scheduleSet(chatID, group, msg.CommandArguments())
	case "next", "next_class":
		h.nextClass(chatID, group)
	case "reminders":
		h.reminders(chatID, group, args)
	case "remind_times":
		h.remindTimes(chatID, group, args)
	case "motivate":
		h.motivate(chatID)
	default:
		h.reply(chatID, "Команда не распознана. /start — список команд.")
	}
}

// reply отправляет обычный текст. Ошибка отправки только логируется.
func (h *Handler) reply(chatID int64, text string) {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("Ошибка отправки в чат %d: %v", chatID, err)
	}
}

// replyMarkdown пробует MarkdownV2, при отказе Telegram шлёт plain-вариант.
func (h *Handler) replyMarkdown(chatID int64, md, plain string) {
	msg := tgbotapi.NewMessage(chatID, md)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	if _, err := h.bot.Send(msg); err != nil {
		log.Printf("MarkdownV2 не прошёл, шлю plain: %v", err)
		h.reply(chatID, plain)
	}
}
