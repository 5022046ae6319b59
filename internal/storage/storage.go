// Package storage — файловое JSON-хранилище бота.
// Каждый ключ («homework_<группа>», «config_<группа>») живёт в своём файле,
// документ пишется целиком после каждой мутации. Последняя запись побеждает.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Backend — подключаемое key-value хранилище, за которым стоят JSON-файлы.
// Load при отсутствии ключа оставляет v нетронутым (пустое значение по умолчанию).
type Backend interface {
	Load(key string, v any) error
	Save(key string, v any) error
}

// FileStore реализует Backend поверх каталога с JSON-файлами.
// Мьютекс сериализует доступ: обработчики команд и планировщик напоминаний
// работают в разных горутинах, но делят одни и те же файлы.
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

// NewFileStore создаёт хранилище в каталоге dir (каталог создаётся при необходимости).
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("создание каталога данных: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load читает документ по ключу. Отсутствующий файл — не ошибка: бот
// стартует с пустыми данными. Битый JSON логируется и тоже даёт пустые
// данные — лучше деградировать, чем уронить обработчик команды.
func (s *FileStore) Load(key string, v any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		log.Printf("Ошибка чтения %s: %v", s.path(key), err)
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("Битый JSON в %s: %v", s.path(key), err)
		return nil
	}
	return nil
}

// Save пишет документ по ключу целиком, с отступами — файлы правят руками.
func (s *FileStore) Save(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("сериализация %s: %w", key, err)
	}
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		log.Printf("Ошибка записи %s: %v", s.path(key), err)
		return fmt.Errorf("запись %s: %w", key, err)
	}
	return nil
}
