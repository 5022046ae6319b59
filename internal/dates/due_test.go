package dates

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Все тесты парсера считают «сегодня» от фиксированного момента.
func fixedNow(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
}

func TestParseDue_UndefinedKeywords(t *testing.T) {
	now := fixedNow(2025, time.March, 10)
	for _, s := range []string{"tbd", "TBD", "none", "N/A", "-", "хз"} {
		due, err := ParseDue(s, now)
		require.NoError(t, err, s)
		assert.True(t, due.IsUndefined(), s)
	}
}

func TestParseDue_Keywords(t *testing.T) {
	now := fixedNow(2025, time.March, 10)
	cases := map[string]DueDate{
		"today":        "2025-03-10",
		"сегодня":      "2025-03-10",
		"tomorrow":     "2025-03-11",
		"Завтра":       "2025-03-11",
		"next week":    "2025-03-17",
		"через неделю": "2025-03-17",
	}
	for in, want := range cases {
		due, err := ParseDue(in, now)
		require.NoError(t, err, in)
		assert.Equal(t, want, due, in)
	}
}

func TestParseDue_PlusOffset(t *testing.T) {
	now := fixedNow(2025, time.March, 10)
	for n := 0; n <= 40; n += 7 {
		due, err := ParseDue(fmt.Sprintf("+%d", n), now)
		require.NoError(t, err)
		want := DueDate(time.Date(2025, time.March, 10+n, 0, 0, 0, 0, time.UTC).Format(DateLayout))
		assert.Equal(t, want, due)
	}

	for _, bad := range []string{"+", "+abc", "+1.5", "+ 3", "+-2"} {
		_, err := ParseDue(bad, now)
		assert.ErrorIs(t, err, ErrInvalidDateFormat, bad)
	}
}

func TestParseDue_DayMonth(t *testing.T) {
	now := fixedNow(2025, time.March, 20)

	// Дата ещё впереди в этом году.
	due, err := ParseDue("25-03", now)
	require.NoError(t, err)
	assert.Equal(t, DueDate("2025-03-25"), due)

	due, err = ParseDue("25/12", now)
	require.NoError(t, err)
	assert.Equal(t, DueDate("2025-12-25"), due)

	// Дата уже прошла — значит, следующий год.
	due, err = ParseDue("15-03", now)
	require.NoError(t, err)
	assert.Equal(t, DueDate("2026-03-15"), due)

	// Сегодняшняя пара день-месяц остаётся в этом году.
	due, err = ParseDue("20-03", now)
	require.NoError(t, err)
	assert.Equal(t, DueDate("2025-03-20"), due)

	for _, bad := range []string{"32-01", "29-02", "01-13", "0-05", "5-0"} {
		_, err := ParseDue(bad, now)
		assert.ErrorIs(t, err, ErrInvalidDateFormat, bad)
	}
}

func TestParseDue_FullDate(t *testing.T) {
	now := fixedNow(2025, time.March, 10)

	due, err := ParseDue("2025-06-01", now)
	require.NoError(t, err)
	assert.Equal(t, DueDate("2025-06-01"), due)

	for _, bad := range []string{"", "   ", "когда-нибудь", "2025/06/01", "01-06-2025", "2025-13-01"} {
		_, err := ParseDue(bad, now)
		assert.ErrorIs(t, err, ErrInvalidDateFormat, bad)
	}
}
