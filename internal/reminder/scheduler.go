// Package reminder — планировщик ежедневных напоминаний.
// Раз в минуту сверяет текущее время HH:MM с настройками каждой группы
// и шлёт дайджест не больше одного раза на группу, триггер и дату.
package reminder

import (
	"context"
	"log"
	"time"

	"github.com/blueberryyyy11/vormizduxt/internal/dates"
	"github.com/blueberryyyy11/vormizduxt/internal/homework"
	"github.com/blueberryyyy11/vormizduxt/internal/markup"
	"github.com/blueberryyyy11/vormizduxt/internal/timetable"
)

// Sender отправляет готовый текст в группу. В проде это Telegram,
// в тестах — рекордер.
type Sender interface {
	Send(group, text string) error
}

const (
	triggerMorning = "morning"
	triggerEvening = "evening"

	// DefaultInterval — период опроса. Должен быть не длиннее минуты,
	// иначе бот может проскочить минуту срабатывания.
	DefaultInterval = time.Minute

	// previewLimit — сколько домашек показывать в вечернем дайджесте.
	previewLimit = 10
)

// fireKey — отметка «уже отправлено»: группа + триггер + дата.
type fireKey struct {
	group   string
	trigger string
	date    string
}

// Scheduler обходит группы по таймеру. Состояние fired живёт только
// в памяти: после рестарта худшее, что случится, — одно повторное
// напоминание в ту же минуту, и то лишь если рестарт попал в неё.
type Scheduler struct {
	homework  *homework.Store
	timetable *timetable.Store
	sender    Sender
	now       func() time.Time
	interval  time.Duration
	fired     map[fireKey]struct{}
}

// New создаёт планировщик. now подменяется в тестах.
func New(hw *homework.Store, tt *timetable.Store, sender Sender, now func() time.Time) *Scheduler {
	return &Scheduler{
		homework:  hw,
		timetable: tt,
		sender:    sender,
		now:       now,
		interval:  DefaultInterval,
		fired:     make(map[fireKey]struct{}),
	}
}

// Run крутит цикл опроса до отмены контекста.
func (s *Scheduler) Run(ctx context.Context) {
	log.Printf("Планировщик напоминаний запущен (интервал %s)", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Планировщик напоминаний остановлен")
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick — один проход по всем группам. Вынесен отдельно, чтобы
// проверять логику срабатывания без реального таймера.
func (s *Scheduler) Tick() {
	now := s.now()
	s.dropStale(now)

	groups, err := s.timetable.Groups()
	if err != nil {
		log.Printf("Ошибка списка групп: %v", err)
		return
	}
	hhmm := now.Format("15:04")

	for _, group := range groups {
		cfg, err := s.timetable.Config(group)
		if err != nil {
			log.Printf("Ошибка конфига группы %s: %v", group, err)
			continue
		}
		if !cfg.RemindersEnabled {
			continue
		}
		if hhmm == cfg.MorningReminder {
			s.fireOnce(group, triggerMorning, now, s.sendMorning)
		}
		if hhmm == cfg.EveningReminder {
			s.fireOnce(group, triggerEvening, now, s.sendEvening)
		}
	}
}

// dropStale выбрасывает отметки за прошлые даты — так триггеры
// сами возвращаются в исходное состояние при смене суток.
func (s *Scheduler) dropStale(now time.Time) {
	today := now.Format(dates.DateLayout)
	for k := range s.fired {
		if k.date != today {
			delete(s.fired, k)
		}
	}
}

// fireOnce отмечает срабатывание до отправки: даже при опросе чаще
// минуты триггер в пределах одной даты сработает ровно один раз.
func (s *Scheduler) fireOnce(group, trigger string, now time.Time, send func(group string, now time.Time) error) {
	k := fireKey{group: group, trigger: trigger, date: now.Format(dates.DateLayout)}
	if _, done := s.fired[k]; done {
		return
	}
	s.fired[k] = struct{}{}
	if err := send(group, now); err != nil {
		log.Printf("Ошибка напоминания (%s, %s): %v", group, trigger, err)
	}
}

// sendMorning — пары на сегодня. Пустой день — молчим.
func (s *Scheduler) sendMorning(group string, now time.Time) error {
	day := now.Weekday().String()
	lessons, err := s.timetable.LessonsOn(group, day, now)
	if err != nil {
		return err
	}
	if len(lessons) == 0 {
		return nil
	}
	return s.sender.Send(group, markup.MorningDigest(day, lessons))
}

// sendEvening — домашки со сдачей ровно завтра. Нечего сдавать — молчим.
func (s *Scheduler) sendEvening(group string, now time.Time) error {
	tomorrow := dates.Midnight(now).AddDate(0, 0, 1)
	entries, err := s.homework.DueExactlyOn(group, tomorrow)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	return s.sender.Send(group, markup.EveningDigest(entries, previewLimit))
}
