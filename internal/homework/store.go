// Package homework — хранилище домашних заданий, по одному документу на группу.
// Документ — map «предмет → список заданий», порядок внутри предмета
// сохраняется в порядке добавления.
package homework

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/blueberryyyy11/vormizduxt/internal/dates"
	"github.com/blueberryyyy11/vormizduxt/internal/storage"
)

// Item — одно домашнее задание.
// Added всегда конкретная дата (день создания), Due может быть TBD.
type Item struct {
	Task  string        `json:"task"`
	Due   dates.DueDate `json:"due"`
	Added string        `json:"added"`
}

// Entry — задание вместе с предметом, к которому оно относится.
type Entry struct {
	Subject string
	Item    Item
}

// OverdueEntry — просроченное задание с количеством дней просрочки.
type OverdueEntry struct {
	Subject     string
	Item        Item
	DaysOverdue int
}

// Stats — сводка по заданиям группы за один проход.
type Stats struct {
	Total       int
	Overdue     int
	DueToday    int
	DueTomorrow int
	Undefined   int
}

// ErrNotFound — предмет или номер задания не существует.
var ErrNotFound = errors.New("homework not found")

// Store — доступ к домашкам всех групп поверх key-value хранилища.
type Store struct {
	backend storage.Backend
}

func NewStore(backend storage.Backend) *Store {
	return &Store{backend: backend}
}

func key(group string) string {
	return "homework_" + group
}

func (s *Store) load(group string) (map[string][]Item, error) {
	hw := make(map[string][]Item)
	if err := s.backend.Load(key(group), &hw); err != nil {
		return nil, err
	}
	return hw, nil
}

// Add добавляет задание в предмет (предмет создаётся при первом задании)
// и сразу сохраняет документ группы.
func (s *Store) Add(group, subject, task string, due dates.DueDate, now time.Time) (Item, error) {
	hw, err := s.load(group)
	if err != nil {
		return Item{}, err
	}
	item := Item{
		Task:  task,
		Due:   due,
		Added: now.Format(dates.DateLayout),
	}
	hw[subject] = append(hw[subject], item)
	if err := s.backend.Save(key(group), hw); err != nil {
		return Item{}, err
	}
	return item, nil
}

// List возвращает все задания группы. Сортировку для показа делает вызывающий.
func (s *Store) List(group string) (map[string][]Item, error) {
	return s.load(group)
}

// Subjects возвращает предметы группы по алфавиту — этот же порядок
// используется для удаления по номеру предмета.
func (s *Store) Subjects(group string) ([]string, error) {
	hw, err := s.load(group)
	if err != nil {
		return nil, err
	}
	subjects := make([]string, 0, len(hw))
	for subject := range hw {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	return subjects, nil
}

// ResolveSubject принимает либо точное имя предмета, либо его номер
// в алфавитном списке (как в /hw_list) и возвращает имя предмета.
func (s *Store) ResolveSubject(group, ref string) (string, error) {
	hw, err := s.load(group)
	if err != nil {
		return "", err
	}
	if _, ok := hw[ref]; ok {
		return ref, nil
	}
	idx, err := strconv.Atoi(ref)
	if err != nil {
		return "", fmt.Errorf("предмет %q: %w", ref, ErrNotFound)
	}
	subjects := make([]string, 0, len(hw))
	for subject := range hw {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	if idx < 1 || idx > len(subjects) {
		return "", fmt.Errorf("предмет №%d (всего %d): %w", idx, len(subjects), ErrNotFound)
	}
	return subjects[idx-1], nil
}

// RemoveAt удаляет задание по предмету и номеру (нумерация с 1).
// Опустевший предмет удаляется целиком — пустые списки не хранятся.
func (s *Store) RemoveAt(group, subject string, pos int) (Item, error) {
	hw, err := s.load(group)
	if err != nil {
		return Item{}, err
	}
	items, ok := hw[subject]
	if !ok {
		return Item{}, fmt.Errorf("предмет %q: %w", subject, ErrNotFound)
	}
	if pos < 1 || pos > len(items) {
		return Item{}, fmt.Errorf("задание №%d (в %q всего %d): %w", pos, subject, len(items), ErrNotFound)
	}
	removed := items[pos-1]
	items = append(items[:pos-1], items[pos:]...)
	if len(items) == 0 {
		delete(hw, subject)
	} else {
		hw[subject] = items
	}
	if err := s.backend.Save(key(group), hw); err != nil {
		return Item{}, err
	}
	return removed, nil
}

// Statistics считает сводку одним проходом. Корзины «сегодня/завтра/просрочено»
// взаимоисключающие и считаются по датам; TBD учитывается отдельно и в
// корзины не попадает; битые даты попадают только в Total.
func (s *Store) Statistics(group string, now time.Time) (Stats, error) {
	hw, err := s.load(group)
	if err != nil {
		return Stats{}, err
	}
	today := dates.Midnight(now)
	tomorrow := today.AddDate(0, 0, 1)

	var st Stats
	for _, items := range hw {
		for _, item := range items {
			st.Total++
			if item.Due.IsUndefined() {
				st.Undefined++
				continue
			}
			d, err := item.Due.Date(now.Location())
			if err != nil {
				continue
			}
			switch {
			case d.Before(today):
				st.Overdue++
			case d.Equal(today):
				st.DueToday++
			case d.Equal(tomorrow):
				st.DueTomorrow++
			}
		}
	}
	return st, nil
}

// PruneOlderThan удаляет задания с дедлайном старше, чем today-days.
// TBD и битые даты не трогаем никогда: первые бессрочны, вторые должны
// остаться на виду для ручной правки. Возвращает число удалённых.
func (s *Store) PruneOlderThan(group string, days int, now time.Time) (int, error) {
	hw, err := s.load(group)
	if err != nil {
		return 0, err
	}
	cutoff := dates.Midnight(now).AddDate(0, 0, -days)
	removed := 0

	for subject, items := range hw {
		kept := items[:0:0]
		for _, item := range items {
			d, err := item.Due.Date(now.Location())
			if err == nil && d.Before(cutoff) {
				removed++
				continue
			}
			kept = append(kept, item)
		}
		if len(kept) == 0 {
			delete(hw, subject)
		} else {
			hw[subject] = kept
		}
	}

	if removed > 0 {
		if err := s.backend.Save(key(group), hw); err != nil {
			return 0, err
		}
	}
	return removed, nil
}

// DueExactlyOn возвращает задания, у которых дедлайн ровно в указанный день.
func (s *Store) DueExactlyOn(group string, date time.Time) ([]Entry, error) {
	hw, err := s.load(group)
	if err != nil {
		return nil, err
	}
	want := dates.DueDate(date.Format(dates.DateLayout))

	var out []Entry
	subjects := make([]string, 0, len(hw))
	for subject := range hw {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	for _, subject := range subjects {
		for _, item := range hw[subject] {
			if item.Due == want {
				out = append(out, Entry{Subject: subject, Item: item})
			}
		}
	}
	return out, nil
}

// Overdue возвращает просроченные задания, самые старые дедлайны первыми.
func (s *Store) Overdue(group string, now time.Time) ([]OverdueEntry, error) {
	hw, err := s.load(group)
	if err != nil {
		return nil, err
	}
	today := dates.Midnight(now)

	var out []OverdueEntry
	for subject, items := range hw {
		for _, item := range items {
			d, err := item.Due.Date(now.Location())
			if err != nil || !d.Before(today) {
				continue
			}
			out = append(out, OverdueEntry{
				Subject:     subject,
				Item:        item,
				DaysOverdue: int(today.Sub(d) / (24 * time.Hour)),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Item.Due != out[j].Item.Due {
			return out[i].Item.Due < out[j].Item.Due
		}
		return out[i].Subject < out[j].Subject
	})
	return out, nil
}
