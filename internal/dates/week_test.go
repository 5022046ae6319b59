package dates

import (
	"testing"
	"time"
)

func TestWeekParity(t *testing.T) {
	cases := []struct {
		date string
		want Parity
	}{
		{"2025-03-10", ParityOdd},  // ISO-неделя 11
		{"2025-03-17", ParityEven}, // ISO-неделя 12
		{"2025-03-23", ParityEven}, // воскресенье той же 12-й недели
		{"2025-03-24", ParityOdd},  // понедельник 13-й
	}
	for _, c := range cases {
		d, err := time.Parse(DateLayout, c.date)
		if err != nil {
			t.Fatalf("bad test date %s: %v", c.date, err)
		}
		if got := WeekParity(d); got != c.want {
			t.Errorf("WeekParity(%s) = %s, want %s", c.date, got, c.want)
		}
	}
}

func TestParityString(t *testing.T) {
	if ParityOdd.String() != "odd" || ParityEven.String() != "even" {
		t.Errorf("unexpected parity strings: %s / %s", ParityOdd, ParityEven)
	}
}
