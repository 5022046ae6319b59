package dates

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// DateLayout — каноничный формат хранения дат в JSON-файлах.
const DateLayout = "2006-01-02"

// Undefined — явный маркер «дедлайн ещё не известен».
// Отличается от ошибки парсинга: такое значение хранится и показывается как TBD.
const Undefined = DueDate("TBD")

// DueDate — срок сдачи домашки: либо дата в формате YYYY-MM-DD, либо Undefined.
// В хранилище никогда не попадает нераспознанная строка.
type DueDate string

// ErrInvalidDateFormat возвращается, когда строка не подошла ни под один
// из поддерживаемых форматов даты.
var ErrInvalidDateFormat = errors.New("invalid date format")

// IsUndefined сообщает, что дедлайн не задан.
func (d DueDate) IsUndefined() bool {
	return d == Undefined
}

// Date разбирает дедлайн в дату (полночь в таймзоне loc).
// Для Undefined и битых значений возвращает ошибку.
func (d DueDate) Date(loc *time.Location) (time.Time, error) {
	if d.IsUndefined() {
		return time.Time{}, ErrInvalidDateFormat
	}
	return time.ParseInLocation(DateLayout, string(d), loc)
}

func (d DueDate) String() string {
	return string(d)
}

// Синонимы «дедлайн не задан». Регистр не важен.
var undefinedWords = map[string]bool{
	"tbd":  true,
	"none": true,
	"n/a":  true,
	"-":    true,
	"хз":   true,
}

// Ключевые слова относительных дат на двух языках.
var (
	todayWords    = map[string]bool{"today": true, "сегодня": true}
	tomorrowWords = map[string]bool{"tomorrow": true, "завтра": true}
	nextWeekWords = map[string]bool{"next week": true, "через неделю": true}
)

// ParseDue превращает свободный пользовательский ввод в DueDate.
// Форматы пробуются строго по порядку: маркер TBD, «сегодня», «завтра»,
// «через неделю», +N дней, день-месяц без года, полная дата YYYY-MM-DD.
// «Сегодня» считается от now (таймзона приложения).
func ParseDue(text string, now time.Time) (DueDate, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return "", ErrInvalidDateFormat
	}
	today := Midnight(now)

	switch {
	case undefinedWords[s]:
		return Undefined, nil
	case todayWords[s]:
		return fromTime(today), nil
	case tomorrowWords[s]:
		return fromTime(today.AddDate(0, 0, 1)), nil
	case nextWeekWords[s]:
		return fromTime(today.AddDate(0, 0, 7)), nil
	}

	if rest, ok := strings.CutPrefix(s, "+"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			return "", ErrInvalidDateFormat
		}
		return fromTime(today.AddDate(0, 0, n)), nil
	}

	if d, ok := parseDayMonth(s, today); ok {
		return fromTime(d), nil
	}

	t, err := time.ParseInLocation(DateLayout, s, now.Location())
	if err != nil {
		return "", ErrInvalidDateFormat
	}
	return fromTime(t), nil
}

// parseDayMonth разбирает пару «день-месяц» или «день/месяц» без года.
// Год берётся текущий; если дата уже прошла — переносим на следующий год
// (пользователь явно имел в виду будущий дедлайн).
func parseDayMonth(s string, today time.Time) (time.Time, bool) {
	sep := "-"
	if !strings.Contains(s, sep) {
		sep = "/"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 2 {
		return time.Time{}, false
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return time.Time{}, false
	}

	d, ok := exactDate(today.Year(), month, day, today.Location())
	if !ok {
		return time.Time{}, false
	}
	if d.Before(today) {
		next, ok := exactDate(today.Year()+1, month, day, today.Location())
		if !ok {
			return time.Time{}, false
		}
		return next, true
	}
	return d, true
}

// exactDate строит дату и отбрасывает «нормализованные» значения
// вроде 32-го января, которые time.Date молча превращает в февраль.
func exactDate(year, month, day int, loc *time.Location) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if d.Day() != day || d.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return d, true
}

// Midnight обрезает время до начала суток.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func fromTime(t time.Time) DueDate {
	return DueDate(t.Format(DateLayout))
}
