package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueberryyyy11/vormizduxt/internal/dates"
	"github.com/blueberryyyy11/vormizduxt/internal/homework"
	"github.com/blueberryyyy11/vormizduxt/internal/storage"
	"github.com/blueberryyyy11/vormizduxt/internal/timetable"
)

const group = "-1003007240886"

// recorder собирает отправленные дайджесты вместо Telegram.
type recorder struct {
	sent []string
}

func (r *recorder) Send(group, text string) error {
	r.sent = append(r.sent, text)
	return nil
}

type fixture struct {
	hw    *homework.Store
	tt    *timetable.Store
	rec   *recorder
	now   time.Time
	sched *Scheduler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	f := &fixture{
		hw:  homework.NewStore(backend),
		tt:  timetable.NewStore(backend),
		rec: &recorder{},
		// Понедельник, нечётная ISO-неделя.
		now: time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC),
	}
	f.sched = New(f.hw, f.tt, f.rec, func() time.Time { return f.now })

	require.NoError(t, f.tt.Replace(group, []byte(`{
		"Monday": [{"subject": "Диффур", "room": "321", "type": "л"}]
	}`)))
	return f
}

// Даже при опросе каждые 10 секунд утренний триггер срабатывает
// не больше одного раза за календарную дату.
func TestMorning_FiresOncePerDay(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 6; i++ {
		f.sched.Tick()
		f.now = f.now.Add(10 * time.Second)
	}
	require.Len(t, f.rec.sent, 1)
	assert.Contains(t, f.rec.sent[0], "Диффур")
	assert.Contains(t, f.rec.sent[0], "Monday")
}

// Смена даты возвращает триггер в исходное состояние.
func TestMorning_RefiresNextDay(t *testing.T) {
	f := newFixture(t)
	// По понедельникам и вторникам есть пары.
	require.NoError(t, f.tt.Replace(group, []byte(`{
		"Monday": [{"subject": "Диффур", "room": "321"}],
		"Tuesday": [{"subject": "Физика", "room": "313"}]
	}`)))

	f.sched.Tick()
	f.now = f.now.AddDate(0, 0, 1) // вторник, 08:00
	f.sched.Tick()

	require.Len(t, f.rec.sent, 2)
	assert.Contains(t, f.rec.sent[1], "Физика")
}

// Утром без пар — тишина, но триггер считается отработанным.
func TestMorning_SilentWhenNoLessons(t *testing.T) {
	f := newFixture(t)
	f.now = f.now.AddDate(0, 0, 1) // вторник: расписания нет

	f.sched.Tick()
	assert.Empty(t, f.rec.sent)
}

func TestEvening_DueTomorrowDigest(t *testing.T) {
	f := newFixture(t)
	_, err := f.hw.Add(group, "Диффур", "номера 3-7", dates.DueDate("2025-03-11"), f.now)
	require.NoError(t, err)
	_, err = f.hw.Add(group, "Диффур", "на послезавтра", dates.DueDate("2025-03-12"), f.now)
	require.NoError(t, err)

	f.now = time.Date(2025, time.March, 10, 18, 0, 0, 0, time.UTC)
	f.sched.Tick()

	require.Len(t, f.rec.sent, 1)
	assert.Contains(t, f.rec.sent[0], "Завтра сдавать")
	assert.Contains(t, f.rec.sent[0], "номера 3-7")
	assert.NotContains(t, f.rec.sent[0], "на послезавтра")
}

// Группе без расписания вечерний дайджест тоже приходит: достаточно,
// чтобы группа была в общем списке и у неё была домашка на завтра.
func TestEvening_HomeworkOnlyGroup(t *testing.T) {
	f := newFixture(t)
	const hwOnly = "555"
	// Так группу регистрирует обработчик при любом входящем сообщении.
	_, err := f.tt.Config(hwOnly)
	require.NoError(t, err)
	_, err = f.hw.Add(hwOnly, "Химия", "отчёт по лабе", dates.DueDate("2025-03-11"), f.now)
	require.NoError(t, err)

	f.now = time.Date(2025, time.March, 10, 18, 0, 0, 0, time.UTC)
	f.sched.Tick()

	require.Len(t, f.rec.sent, 1)
	assert.Contains(t, f.rec.sent[0], "отчёт по лабе")
}

func TestEvening_SilentWhenNothingDue(t *testing.T) {
	f := newFixture(t)
	f.now = time.Date(2025, time.March, 10, 18, 0, 0, 0, time.UTC)
	f.sched.Tick()
	assert.Empty(t, f.rec.sent)
}

// Выключенные напоминания пропускают группу целиком.
func TestDisabledGroupSkipped(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.tt.SetRemindersEnabled(group, false))

	f.sched.Tick()
	assert.Empty(t, f.rec.sent)
}

// Вне минуты триггера ничего не происходит.
func TestNoMatchNoSend(t *testing.T) {
	f := newFixture(t)
	f.now = time.Date(2025, time.March, 10, 8, 1, 0, 0, time.UTC)
	f.sched.Tick()
	assert.Empty(t, f.rec.sent)
}

// Нестандартное время триггера из настроек группы тоже работает.
func TestCustomTriggerTimes(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.tt.SetReminderTimes(group, "06:45", "22:15"))

	f.now = time.Date(2025, time.March, 10, 6, 45, 30, 0, time.UTC)
	f.sched.Tick()
	require.Len(t, f.rec.sent, 1)

	f.now = time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	f.sched.Tick()
	assert.Len(t, f.rec.sent, 1, "дефолтное время больше не срабатывает")
}
