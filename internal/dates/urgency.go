package dates

import (
	"fmt"
	"time"
)

// Tier — ранг срочности дедлайна. Чем меньше значение, тем срочнее:
// просроченные задачи сортируются первыми, TBD — последними.
type Tier int

const (
	TierOverdue Tier = iota
	TierDueSoon      // дедлайн в ближайшие сутки
	TierTomorrow
	TierLater
	TierUnknown // битая дата в хранилище
	TierUndefined
)

func (t Tier) String() string {
	switch t {
	case TierOverdue:
		return "overdue"
	case TierDueSoon:
		return "due soon"
	case TierTomorrow:
		return "tomorrow"
	case TierLater:
		return "later"
	case TierUnknown:
		return "unknown"
	case TierUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// Classify вычисляет человекочитаемую метку срочности и ранг для сортировки.
// Дедлайн — полночь в начале дня сдачи: задача «на завтра» начинает
// отсчёт часов уже с сегодняшнего утра, а в сам день сдачи считается
// просроченной. Это поведение менять нельзя — на нём построены напоминания.
func Classify(due DueDate, now time.Time) (string, Tier) {
	if due.IsUndefined() {
		return "TBD", TierUndefined
	}
	d, err := due.Date(now.Location())
	if err != nil {
		return "unknown", TierUnknown
	}
	delta := d.Sub(now)

	switch {
	case delta < 0:
		days := int(-delta / (24 * time.Hour))
		if days == 1 {
			return "1 day overdue", TierOverdue
		}
		return fmt.Sprintf("%d days overdue", days), TierOverdue
	case delta < time.Hour:
		return fmt.Sprintf("%d min left", int(delta/time.Minute)), TierDueSoon
	case delta < 24*time.Hour:
		return fmt.Sprintf("%d h left", int(delta/time.Hour)), TierDueSoon
	case delta < 48*time.Hour:
		return "tomorrow", TierTomorrow
	default:
		return fmt.Sprintf("%d days left", int(delta/(24*time.Hour))), TierLater
	}
}

// Deadline возвращает момент дедлайна (полночь дня сдачи) для сортировки.
// Второй результат false — для TBD и битых дат, такие уходят в конец списка.
func Deadline(due DueDate, loc *time.Location) (time.Time, bool) {
	d, err := due.Date(loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Less задаёт порядок показа двух дедлайнов: сначала по рангу срочности,
// внутри ранга — по дате (старые просрочки раньше).
func Less(a, b DueDate, now time.Time) bool {
	_, ta := Classify(a, now)
	_, tb := Classify(b, now)
	if ta != tb {
		return ta < tb
	}
	da, oka := Deadline(a, now.Location())
	db, okb := Deadline(b, now.Location())
	if !oka || !okb {
		return oka && !okb
	}
	return da.Before(db)
}
