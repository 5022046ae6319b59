package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueberryyyy11/vormizduxt/internal/storage"
)

const group = "-1003007240886"

func newTestStore(t *testing.T) *Store {
	t.Helper()
	backend, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewStore(backend)
}

const sampleTimetable = `{
  "Monday": [
    {"subject": "Теория вероятности", "room": "321", "type": "л"},
    {"subject": "Диффур", "room": "325", "type": "л", "week": "odd"},
    {"subject": "", "room": "", "type": ""}
  ],
  "Wednesday": [
    {"subject": "Python", "room": "319", "type": "пр"}
  ],
  "Sunday": []
}`

func TestConfig_ReadRepairDefaults(t *testing.T) {
	backend, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	s := NewStore(backend)

	cfg, err := s.Config(group)
	require.NoError(t, err)
	assert.True(t, cfg.RemindersEnabled)
	assert.Equal(t, DefaultMorningReminder, cfg.MorningReminder)
	assert.Equal(t, DefaultEveningReminder, cfg.EveningReminder)
	assert.NotNil(t, cfg.Timetable)
	assert.Empty(t, cfg.Timetable)

	// Дефолты сохранены на диск: новый Store видит их без повторного ремонта.
	s2 := NewStore(backend)
	cfg2, err := s2.Config(group)
	require.NoError(t, err)
	assert.Equal(t, cfg, cfg2)
}

func TestReplaceAndGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Replace(group, []byte(sampleTimetable)))

	table, err := s.Get(group)
	require.NoError(t, err)

	want := map[string][]Lesson{
		"Monday": {
			{Subject: "Теория вероятности", Room: "321", Type: "л"},
			{Subject: "Диффур", Room: "325", Type: "л", Week: "odd"},
			{Subject: "", Room: "", Type: ""},
		},
		"Wednesday": {
			{Subject: "Python", Room: "319", Type: "пр"},
		},
		"Sunday": {},
	}
	assert.Equal(t, want, table)
}

func TestReplace_InvalidFormat(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Replace(group, []byte(sampleTimetable)))

	bad := []string{
		`[]`,
		`"строка"`,
		`{"Понедельник": []}`,
		`{"Monday": {"subject": "не список"}}`,
		`{"Monday": [{"subject": "Диффур", "week": "ч/н"}]}`,
	}
	for _, raw := range bad {
		err := s.Replace(group, []byte(raw))
		assert.ErrorIs(t, err, ErrInvalidFormat, raw)
	}

	// Неудачные попытки не трогают старое расписание.
	table, err := s.Get(group)
	require.NoError(t, err)
	assert.Len(t, table["Monday"], 3)
}

func TestLessonsOn_WeekParityAndWindows(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Replace(group, []byte(sampleTimetable)))

	oddMonday := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)  // ISO-неделя 11
	evenMonday := time.Date(2025, time.March, 17, 0, 0, 0, 0, time.UTC) // ISO-неделя 12

	lessons, err := s.LessonsOn(group, "Monday", oddMonday)
	require.NoError(t, err)
	// «Окно» с пустым subject пропущено, биweekly-пара идёт на нечётной неделе.
	require.Len(t, lessons, 2)
	assert.Equal(t, "Диффур", lessons[1].Subject)

	lessons, err = s.LessonsOn(group, "Monday", evenMonday)
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, "Теория вероятности", lessons[0].Subject)
}

func TestNextUpcoming(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Replace(group, []byte(sampleTimetable)))

	// Со вторника ближайший день с парами — среда.
	tuesday := time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC)
	day, date, lessons, found, err := s.NextUpcoming(group, tuesday)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Wednesday", day)
	assert.Equal(t, 12, date.Day())
	require.Len(t, lessons, 1)
	assert.Equal(t, "Python", lessons[0].Subject)

	// Пустое расписание — пар нет всю неделю.
	empty := newTestStore(t)
	_, _, _, found, err = empty.NextUpcoming(group, tuesday)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSetReminders(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetRemindersEnabled(group, false))
	cfg, err := s.Config(group)
	require.NoError(t, err)
	assert.False(t, cfg.RemindersEnabled)

	require.NoError(t, s.SetReminderTimes(group, "07:30", "21:00"))
	cfg, _ = s.Config(group)
	assert.Equal(t, "07:30", cfg.MorningReminder)
	assert.Equal(t, "21:00", cfg.EveningReminder)

	for _, bad := range [][2]string{{"7:3", "18:00"}, {"25:00", "18:00"}, {"08:00", "вечером"}} {
		err := s.SetReminderTimes(group, bad[0], bad[1])
		assert.ErrorIs(t, err, ErrInvalidTime, bad)
	}
}

func TestGroupsRegistry(t *testing.T) {
	s := newTestStore(t)

	groups, err := s.Groups()
	require.NoError(t, err)
	assert.Empty(t, groups)

	_, err = s.Config("222")
	require.NoError(t, err)
	_, err = s.Config("111")
	require.NoError(t, err)
	_, err = s.Config("222")
	require.NoError(t, err)

	groups, err = s.Groups()
	require.NoError(t, err)
	assert.Equal(t, []string{"111", "222"}, groups)
}
