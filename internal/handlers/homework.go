package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/blueberryyyy11/vormizduxt/internal/dates"
	"github.com/blueberryyyy11/vormizduxt/internal/homework"
	"github.com/blueberryyyy11/vormizduxt/internal/markup"
)

const dateFormatsHint = "Не понял срок. Пишите: 2025-03-15, 15-03, +3, сегодня, завтра, через неделю или tbd."

// hwAdd — добавление домашки. С аргументами — одной командой
// (/hw_add Предмет Задание Срок), без — пошаговый диалог.
func (h *Handler) hwAdd(chatID int64, group string, key chatUser, args []string) {
	if len(args) == 0 {
		h.drafts[key] = &draft{State: StateAwaitingSubject}
		h.reply(chatID, "По какому предмету? (/cancel — отменить)")
		return
	}
	if len(args) < 3 {
		h.reply(chatID, "Формат: /hw_add Предмет Задание Срок\nПример: /hw_add Диффур номера 3-7 завтра\nИли просто /hw_add — добавлю по шагам.")
		return
	}

	subject := args[0]
	rest := args[1:]

	// Срок — последнее слово. Двухсловные формы («через неделю»,
	// «next week») пробуем, только если последнее слово само не срок.
	due, err := dates.ParseDue(rest[len(rest)-1], h.now())
	dueWords := 1
	if err != nil && len(rest) >= 3 {
		if d, err2 := dates.ParseDue(strings.Join(rest[len(rest)-2:], " "), h.now()); err2 == nil {
			due, err, dueWords = d, nil, 2
		}
	}
	if err != nil {
		h.reply(chatID, dateFormatsHint)
		return
	}
	task := strings.Join(rest[:len(rest)-dueWords], " ")
	h.commitHomework(chatID, group, subject, task, due)
}

// processDraftMessage продвигает пошаговый диалог на один ответ.
func (h *Handler) processDraftMessage(chatID int64, group string, key chatUser, d *draft, text string) {
	if text == "" {
		h.reply(chatID, "Жду текст. /cancel — отменить.")
		return
	}
	switch d.State {
	case StateAwaitingSubject:
		d.Subject = text
		d.State = StateAwaitingTask
		h.reply(chatID, "Что задали?")
	case StateAwaitingTask:
		d.Task = text
		d.State = StateAwaitingDue
		h.reply(chatID, "К какому сроку? (2025-03-15, 15-03, +3, завтра, tbd)")
	case StateAwaitingDue:
		due, err := dates.ParseDue(text, h.now())
		if err != nil {
			h.reply(chatID, dateFormatsHint)
			return
		}
		delete(h.drafts, key)
		h.commitHomework(chatID, group, d.Subject, d.Task, due)
	default:
		delete(h.drafts, key)
	}
}

func (h *Handler) commitHomework(chatID int64, group, subject, task string, due dates.DueDate) {
	item, err := h.homework.Add(group, subject, task, due, h.now())
	if err != nil {
		h.reply(chatID, "Не получилось сохранить задание, попробуйте ещё раз.")
		return
	}
	h.reply(chatID, fmt.Sprintf("Записал: %s - %s (срок %s)", subject, task, item.Due))
}

func (h *Handler) hwList(chatID int64, group string) {
	hw, err := h.homework.List(group)
	if err != nil || len(hw) == 0 {
		h.reply(chatID, "Домашек нет.")
		return
	}
	md, plain := markup.FormatHomeworkList(hw, h.now())
	h.replyMarkdown(chatID, md, plain)
}

// hwRemove удаляет задание: предмет по имени или номеру из /hw_list,
// затем номер задания.
func (h *Handler) hwRemove(chatID int64, group string, args []string) {
	if len(args) < 2 {
		h.reply(chatID, "Формат: /hw_remove Предмет Номер\nПредмет можно указать номером из /hw_list.")
		return
	}
	pos, err := strconv.Atoi(args[1])
	if err != nil {
		h.reply(chatID, "Номер задания должен быть числом.")
		return
	}
	subject, err := h.homework.ResolveSubject(group, args[0])
	if err != nil {
		h.replyNotFound(chatID, group, err)
		return
	}
	removed, err := h.homework.RemoveAt(group, subject, pos)
	if err != nil {
		h.replyNotFound(chatID, group, err)
		return
	}
	h.reply(chatID, fmt.Sprintf("Удалил: %s - %s", subject, removed.Task))
}

// replyNotFound — ответ на ErrNotFound с актуальными диапазонами.
func (h *Handler) replyNotFound(chatID int64, group string, err error) {
	if !errors.Is(err, homework.ErrNotFound) {
		h.reply(chatID, "Не получилось, попробуйте ещё раз.")
		return
	}
	subjects, _ := h.homework.Subjects(group)
	if len(subjects) == 0 {
		h.reply(chatID, "Домашек нет.")
		return
	}
	h.reply(chatID, fmt.Sprintf("Не нашёл. Предметы: %s (номера 1-%d, смотрите /hw_list).",
		strings.Join(subjects, ", "), len(subjects)))
}

func (h *Handler) hwToday(chatID int64, group string) {
	entries, err := h.homework.DueExactlyOn(group, dates.Midnight(h.now()))
	if err != nil || len(entries) == 0 {
		h.reply(chatID, "На сегодня ничего не задано.")
		return
	}
	h.reply(chatID, markup.FormatDueEntries("Сдать сегодня:", entries))
}

func (h *Handler) hwOverdue(chatID int64, group string) {
	entries, err := h.homework.Overdue(group, h.now())
	if err != nil || len(entries) == 0 {
		h.reply(chatID, "Просроченного нет.")
		return
	}
	h.reply(chatID, markup.FormatOverdue(entries))
}

func (h *Handler) hwStats(chatID int64, group string) {
	st, err := h.homework.Statistics(group, h.now())
	if err != nil {
		h.reply(chatID, "Не получилось собрать статистику.")
		return
	}
	if st.Total == 0 {
		h.reply(chatID, "Домашек нет.")
		return
	}
	h.reply(chatID, markup.FormatStats(st))
}

func (h *Handler) hwClean(chatID int64, group string) {
	removed, err := h.homework.PruneOlderThan(group, 30, h.now())
	if err != nil {
		h.reply(chatID, "Не получилось почистить.")
		return
	}
	if removed == 0 {
		h.reply(chatID, "Чистить нечего.")
		return
	}
	h.reply(chatID, fmt.Sprintf("Убрал %d старых заданий.", removed))
}
