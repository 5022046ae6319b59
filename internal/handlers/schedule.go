package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blueberryyyy11/vormizduxt/internal/markup"
	"github.com/blueberryyyy11/vormizduxt/internal/timetable"
)

func (h *Handler) scheduleToday(chatID int64, group string) {
	now := h.now()
	day := now.Weekday().String()
	lessons, err := h.timetable.LessonsOn(group, day, now)
	if err != nil {
		h.reply(chatID, "Не получилось достать расписание.")
		return
	}
	if len(lessons) == 0 {
		h.reply(chatID, "Сегодня пар нет.")
		return
	}
	h.reply(chatID, markup.FormatLessons(fmt.Sprintf("Пары сегодня (%s):", day), lessons))
}

func (h *Handler) scheduleWeek(chatID int64, group string) {
	table, err := h.timetable.Get(group)
	if err != nil {
		h.reply(chatID, "Не получилось достать расписание.")
		return
	}
	h.reply(chatID, markup.FormatWeek(table))
}

// scheduleSet — загрузка расписания целиком одним JSON-объектом.
func (h *Handler) scheduleSet(chatID int64, group, raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		h.reply(chatID, `Формат: /schedule_set {"Monday": [{"subject": "Диффур", "room": "321", "type": "л", "week": "odd"}], ...}
Поля type и week необязательны, week бывает "odd" или "even".`)
		return
	}
	if err := h.timetable.Replace(group, []byte(raw)); err != nil {
		if errors.Is(err, timetable.ErrInvalidFormat) {
			h.reply(chatID, fmt.Sprintf("Расписание не принято: %v\nСтарое расписание не тронуто.", err))
		} else {
			h.reply(chatID, "Не получилось сохранить расписание.")
		}
		return
	}
	h.reply(chatID, "Расписание обновлено.")
}

func (h *Handler) nextClass(chatID int64, group string) {
	day, date, lessons, found, err := h.timetable.NextUpcoming(group, h.now())
	if err != nil {
		h.reply(chatID, "Не получилось достать расписание.")
		return
	}
	if !found {
		h.reply(chatID, "На неделю вперёд пар нет.")
		return
	}
	h.reply(chatID, markup.FormatLessons(
		fmt.Sprintf("Ближайшие пары (%s %s):", day, date.Format("01-02")), lessons))
}

// reminders — включение и выключение напоминаний группы.
func (h *Handler) reminders(chatID int64, group string, args []string) {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		cfg, err := h.timetable.Config(group)
		if err != nil {
			h.reply(chatID, "Формат: /reminders on|off")
			return
		}
		state := "выключены"
		if cfg.RemindersEnabled {
			state = "включены"
		}
		h.reply(chatID, fmt.Sprintf("Напоминания %s (утро %s, вечер %s).\n/reminders on|off — переключить.",
			state, cfg.MorningReminder, cfg.EveningReminder))
		return
	}
	enabled := args[0] == "on"
	if err := h.timetable.SetRemindersEnabled(group, enabled); err != nil {
		h.reply(chatID, "Не получилось сохранить настройку.")
		return
	}
	if enabled {
		h.reply(chatID, "Напоминания включены.")
	} else {
		h.reply(chatID, "Напоминания выключены.")
	}
}

// remindTimes задаёт время утреннего и вечернего напоминаний.
func (h *Handler) remindTimes(chatID int64, group string, args []string) {
	if len(args) != 2 {
		h.reply(chatID, "Формат: /remind_times HH:MM HH:MM (утро и вечер)\nПример: /remind_times 08:00 18:00")
		return
	}
	if err := h.timetable.SetReminderTimes(group, args[0], args[1]); err != nil {
		if errors.Is(err, timetable.ErrInvalidTime) {
			h.reply(chatID, "Время пишется как HH:MM, например 08:00.")
		} else {
			h.reply(chatID, "Не получилось сохранить настройку.")
		}
		return
	}
	h.reply(chatID, fmt.Sprintf("Напоминания: утро %s, вечер %s.", args[0], args[1]))
}
