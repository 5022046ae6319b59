package markup

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/blueberryyyy11/vormizduxt/internal/dates"
	"github.com/blueberryyyy11/vormizduxt/internal/homework"
	"github.com/blueberryyyy11/vormizduxt/internal/timetable"
)

// lessonLine — строка «1. Предмет - аудитория (тип) [неделя]».
func lessonLine(n int, l timetable.Lesson) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d. %s - %s", n, l.Subject, l.Room)
	if l.Type != "" {
		fmt.Fprintf(&sb, " (%s)", l.Type)
	}
	if l.Week != "" {
		fmt.Fprintf(&sb, " [%s]", l.Week)
	}
	return sb.String()
}

// FormatLessons собирает список пар с заголовком.
func FormatLessons(title string, lessons []timetable.Lesson) string {
	var sb strings.Builder
	sb.WriteString(title + "\n\n")
	for i, l := range lessons {
		sb.WriteString(lessonLine(i+1, l) + "\n")
	}
	return sb.String()
}

// FormatWeek показывает всю сетку недели, пропуская пустые дни.
// Для каждой пары видно, в какую чётность она идёт — поэтому здесь
// показываются и пары «не этой» недели.
func FormatWeek(table map[string][]timetable.Lesson) string {
	var sb strings.Builder
	sb.WriteString("Расписание на неделю:\n")
	empty := true
	for _, day := range timetable.Weekdays() {
		var real []timetable.Lesson
		for _, l := range table[day] {
			if l.Subject != "" {
				real = append(real, l)
			}
		}
		if len(real) == 0 {
			continue
		}
		empty = false
		sb.WriteString("\n" + day + ":\n")
		for i, l := range real {
			sb.WriteString(lessonLine(i+1, l) + "\n")
		}
	}
	if empty {
		return "Расписание пустое. Задайте его через /schedule_set"
	}
	return sb.String()
}

// sortedSubjects — предметы по алфавиту, этот же порядок задаёт номера
// предметов в /hw_list и /hw_remove.
func sortedSubjects(hw map[string][]homework.Item) []string {
	subjects := make([]string, 0, len(hw))
	for subject := range hw {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	return subjects
}

// FormatHomeworkList собирает список домашек в MarkdownV2 и одновременно
// plain-вариант — если Telegram отклонит разметку, отправляем текст как есть.
func FormatHomeworkList(hw map[string][]homework.Item, now time.Time) (md, plain string) {
	var mdSB, plainSB strings.Builder
	mdSB.WriteString("Домашка:\n\n")
	plainSB.WriteString("Домашка:\n\n")

	for subjectIdx, subject := range sortedSubjects(hw) {
		fmt.Fprintf(&mdSB, "%d\\. *%s*:\n", subjectIdx+1, EscapeMarkdown(subject))
		fmt.Fprintf(&plainSB, "%d. %s:\n", subjectIdx+1, subject)

		items := make([]homework.Item, len(hw[subject]))
		copy(items, hw[subject])
		sort.SliceStable(items, func(i, j int) bool {
			return dates.Less(items[i].Due, items[j].Due, now)
		})

		for i, item := range items {
			label, _ := dates.Classify(item.Due, now)
			fmt.Fprintf(&mdSB, "   %d\\. %s \\- %s \\(%s\\)\n",
				i+1, EscapeMarkdown(item.Task), EscapeMarkdown(item.Due.String()), EscapeMarkdown(label))
			fmt.Fprintf(&plainSB, "   %d. %s - %s (%s)\n", i+1, item.Task, item.Due, label)
		}
		mdSB.WriteString("\n")
		plainSB.WriteString("\n")
	}
	return mdSB.String(), plainSB.String()
}

// FormatStats — сводка по домашкам с короткой оценкой положения дел.
func FormatStats(st homework.Stats) string {
	var sb strings.Builder
	sb.WriteString("Статистика по домашкам:\n\n")
	fmt.Fprintf(&sb, "Всего: %d\n", st.Total)
	fmt.Fprintf(&sb, "Просрочено: %d\n", st.Overdue)
	fmt.Fprintf(&sb, "На сегодня: %d\n", st.DueToday)
	fmt.Fprintf(&sb, "На завтра: %d\n", st.DueTomorrow)
	fmt.Fprintf(&sb, "Без срока: %d\n", st.Undefined)

	switch {
	case st.Overdue > 0:
		fmt.Fprintf(&sb, "\nПросроченных заданий: %d. Пора догонять.", st.Overdue)
	case st.DueToday > 0:
		fmt.Fprintf(&sb, "\nСегодня сдавать %d. Удачи.", st.DueToday)
	default:
		sb.WriteString("\nВсё под контролем.")
	}
	return sb.String()
}

// FormatDueEntries — нумерованный список «Предмет: задание».
func FormatDueEntries(title string, entries []homework.Entry) string {
	var sb strings.Builder
	sb.WriteString(title + "\n\n")
	for i, e := range entries {
		fmt.Fprintf(&sb, "%d. %s: %s\n", i+1, e.Subject, e.Item.Task)
	}
	return sb.String()
}

// FormatOverdue — просроченные задания, самые старые первыми.
func FormatOverdue(entries []homework.OverdueEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Просрочено (%d):\n\n", len(entries))
	for i, e := range entries {
		fmt.Fprintf(&sb, "%d. %s: %s\n", i+1, e.Subject, e.Item.Task)
		fmt.Fprintf(&sb, "   %s (%dd overdue)\n", e.Item.Due, e.DaysOverdue)
	}
	return sb.String()
}

// MorningDigest — утреннее напоминание: пары на сегодня.
func MorningDigest(day string, lessons []timetable.Lesson) string {
	return FormatLessons(fmt.Sprintf("Доброе утро. Пары сегодня (%s):", day), lessons)
}

// EveningDigest — вечернее напоминание: домашки со сдачей завтра.
// Показываем не больше limit заданий, остальное — счётчиком.
func EveningDigest(entries []homework.Entry, limit int) string {
	var sb strings.Builder
	sb.WriteString("Завтра сдавать:\n\n")
	shown := entries
	if limit > 0 && len(entries) > limit {
		shown = entries[:limit]
	}
	for i, e := range shown {
		fmt.Fprintf(&sb, "%d. %s: %s\n", i+1, e.Subject, e.Item.Task)
	}
	if rest := len(entries) - len(shown); rest > 0 {
		fmt.Fprintf(&sb, "...и ещё %d\n", rest)
	}
	return sb.String()
}
