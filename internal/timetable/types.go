package timetable

import (
	"time"

	"github.com/blueberryyyy11/vormizduxt/internal/dates"
)

// Lesson — одна пара в сетке дня недели.
// Пустой Subject — «окно», такие записи пропускаются при показе и в напоминаниях.
// Week: "odd"/"even" — пара идёт раз в две недели, пусто — каждую неделю.
type Lesson struct {
	Subject string `json:"subject"`
	Room    string `json:"room"`
	Type    string `json:"type,omitempty"`
	Week    string `json:"week,omitempty"`
}

// OccursOn сообщает, идёт ли пара в указанную дату с учётом чётности недели.
func (l Lesson) OccursOn(date time.Time) bool {
	if l.Week == "" {
		return true
	}
	return l.Week == dates.WeekParity(date).String()
}

// GroupConfig — настройки одной группы: напоминания и сетка расписания.
type GroupConfig struct {
	RemindersEnabled bool                `json:"reminders_enabled"`
	MorningReminder  string              `json:"morning_reminder"`
	EveningReminder  string              `json:"evening_reminder"`
	Timetable        map[string][]Lesson `json:"timetable"`
}

// Значения по умолчанию для новой группы.
const (
	DefaultMorningReminder = "08:00"
	DefaultEveningReminder = "18:00"
)

// weekdays — допустимые ключи расписания, в порядке показа недели.
var weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

func isWeekday(name string) bool {
	for _, d := range weekdays {
		if d == name {
			return true
		}
	}
	return false
}

// Weekdays возвращает дни недели в порядке показа.
func Weekdays() []string {
	return weekdays
}
