package dates

import "time"

// Parity — чётность учебной недели по ISO-номеру недели.
type Parity int

const (
	ParityOdd Parity = iota
	ParityEven
)

func (p Parity) String() string {
	if p == ParityEven {
		return "even"
	}
	return "odd"
}

// WeekParity возвращает чётность недели для даты.
// Чётная — если ISO-номер недели делится на 2, иначе нечётная.
func WeekParity(t time.Time) Parity {
	_, week := t.ISOWeek()
	if week%2 == 0 {
		return ParityEven
	}
	return ParityOdd
}
