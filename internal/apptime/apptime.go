// Package apptime — единая точка работы со временем в боте.
// Все вычисления «сегодня/завтра» (парсер дат, статистика, напоминания)
// обязаны брать время отсюда, чтобы таймзона применялась одинаково везде.
package apptime

import (
	"sync"
	"time"
)

var (
	mu  sync.RWMutex
	loc = time.Local
)

// SetLocation задаёт таймзону приложения. Вызывается один раз при старте.
func SetLocation(l *time.Location) {
	if l == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	loc = l
}

// Location возвращает текущую таймзону приложения.
func Location() *time.Location {
	mu.RLock()
	defer mu.RUnlock()
	return loc
}

// Now возвращает текущее время в таймзоне приложения.
func Now() time.Time {
	return time.Now().In(Location())
}
