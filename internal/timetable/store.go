// Package timetable — хранилище расписаний и настроек групп.
// Конфиг группы создаётся лениво с дефолтами и сразу сохраняется обратно,
// чтобы файл можно было увидеть и поправить руками.
package timetable

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/blueberryyyy11/vormizduxt/internal/storage"
)

// ErrInvalidFormat — JSON расписания не того вида, который принимает Replace.
var ErrInvalidFormat = errors.New("invalid timetable format")

// ErrInvalidTime — время напоминания не в формате HH:MM.
var ErrInvalidTime = errors.New("invalid reminder time, expected HH:MM")

const groupsKey = "groups"

// Store — доступ к конфигам всех групп поверх key-value хранилища.
type Store struct {
	backend storage.Backend
	cache   *configCache
}

func NewStore(backend storage.Backend) *Store {
	return &Store{backend: backend, cache: newConfigCache()}
}

func key(group string) string {
	return "config_" + group
}

// Config возвращает настройки группы. Для незнакомой группы заполняет
// дефолты и тут же сохраняет их (read-repair), а также регистрирует
// группу в общем списке для планировщика напоминаний.
func (s *Store) Config(group string) (GroupConfig, error) {
	if cfg, ok := s.cache.get(group); ok {
		return cfg, nil
	}

	var cfg GroupConfig
	if err := s.backend.Load(key(group), &cfg); err != nil {
		return GroupConfig{}, err
	}

	repaired := false
	if cfg.MorningReminder == "" && cfg.EveningReminder == "" && cfg.Timetable == nil {
		// Свежая группа — полный набор дефолтов, включая включённые напоминания.
		cfg.RemindersEnabled = true
		repaired = true
	}
	if cfg.MorningReminder == "" {
		cfg.MorningReminder = DefaultMorningReminder
		repaired = true
	}
	if cfg.EveningReminder == "" {
		cfg.EveningReminder = DefaultEveningReminder
		repaired = true
	}
	if cfg.Timetable == nil {
		cfg.Timetable = make(map[string][]Lesson)
		repaired = true
	}
	if repaired {
		if err := s.save(group, cfg); err != nil {
			return GroupConfig{}, err
		}
	} else {
		s.cache.set(group, cfg)
	}
	if err := s.register(group); err != nil {
		return GroupConfig{}, err
	}
	return cfg, nil
}

func (s *Store) save(group string, cfg GroupConfig) error {
	if err := s.backend.Save(key(group), cfg); err != nil {
		return err
	}
	s.cache.set(group, cfg)
	return nil
}

// register добавляет группу в список известных, если её там ещё нет.
func (s *Store) register(group string) error {
	var groups []string
	if err := s.backend.Load(groupsKey, &groups); err != nil {
		return err
	}
	for _, g := range groups {
		if g == group {
			return nil
		}
	}
	groups = append(groups, group)
	sort.Strings(groups)
	return s.backend.Save(groupsKey, groups)
}

// Groups возвращает все группы, когда-либо трогавшие бота.
// По этому списку планировщик обходит триггеры напоминаний.
func (s *Store) Groups() ([]string, error) {
	var groups []string
	if err := s.backend.Load(groupsKey, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Get возвращает сетку расписания группы.
func (s *Store) Get(group string) (map[string][]Lesson, error) {
	cfg, err := s.Config(group)
	if err != nil {
		return nil, err
	}
	return cfg.Timetable, nil
}

// Replace принимает JSON вида {"Monday": [{"subject": ...}, ...], ...}
// и заменяет сетку целиком. Никаких слияний: что прислали, то и расписание.
// При любой ошибке формата старое расписание остаётся нетронутым.
func (s *Store) Replace(group string, raw []byte) error {
	var byDay map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byDay); err != nil {
		return fmt.Errorf("%w: ожидается JSON-объект «день недели → список пар»", ErrInvalidFormat)
	}

	table := make(map[string][]Lesson, len(byDay))
	for day, rawLessons := range byDay {
		if !isWeekday(day) {
			return fmt.Errorf("%w: неизвестный день недели %q", ErrInvalidFormat, day)
		}
		var lessons []Lesson
		if err := json.Unmarshal(rawLessons, &lessons); err != nil {
			return fmt.Errorf("%w: %q должен быть списком пар", ErrInvalidFormat, day)
		}
		for _, l := range lessons {
			if l.Week != "" && l.Week != "odd" && l.Week != "even" {
				return fmt.Errorf("%w: %q — поле week бывает только \"odd\" или \"even\"", ErrInvalidFormat, day)
			}
		}
		table[day] = lessons
	}

	cfg, err := s.Config(group)
	if err != nil {
		return err
	}
	cfg.Timetable = table
	return s.save(group, cfg)
}

// LessonsOn возвращает пары группы на день: без «окон» и только те,
// что идут на этой неделе по чётности. Порядок — как в расписании.
func (s *Store) LessonsOn(group, weekday string, date time.Time) ([]Lesson, error) {
	table, err := s.Get(group)
	if err != nil {
		return nil, err
	}
	var out []Lesson
	for _, l := range table[weekday] {
		if l.Subject != "" && l.OccursOn(date) {
			out = append(out, l)
		}
	}
	return out, nil
}

// NextUpcoming ищет ближайший день с парами, начиная с from и на 7 дней
// вперёд включительно. found=false — вся неделя пустая.
func (s *Store) NextUpcoming(group string, from time.Time) (day string, date time.Time, lessons []Lesson, found bool, err error) {
	for i := 0; i < 7; i++ {
		d := from.AddDate(0, 0, i)
		name := d.Weekday().String()
		ls, err := s.LessonsOn(group, name, d)
		if err != nil {
			return "", time.Time{}, nil, false, err
		}
		if len(ls) > 0 {
			return name, d, ls, true, nil
		}
	}
	return "", time.Time{}, nil, false, nil
}

// SetRemindersEnabled включает или выключает напоминания группы.
func (s *Store) SetRemindersEnabled(group string, enabled bool) error {
	cfg, err := s.Config(group)
	if err != nil {
		return err
	}
	cfg.RemindersEnabled = enabled
	return s.save(group, cfg)
}

// SetReminderTimes задаёт время утреннего и вечернего напоминаний.
func (s *Store) SetReminderTimes(group, morning, evening string) error {
	for _, v := range []string{morning, evening} {
		if _, err := time.Parse("15:04", v); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTime, v)
		}
	}
	cfg, err := s.Config(group)
	if err != nil {
		return err
	}
	cfg.MorningReminder = morning
	cfg.EveningReminder = evening
	return s.save(group, cfg)
}
