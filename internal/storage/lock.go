package storage

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// ErrAlreadyRunning — другой экземпляр бота уже держит lock-файл.
var ErrAlreadyRunning = errors.New("another bot instance is already running")

// Lock — сторожевой lock-файл, не дающий запустить два экземпляра бота
// поверх одних и тех же JSON-файлов.
type Lock struct {
	path string
}

// AcquireLock создаёт lock-файл с PID процесса. Если файл уже существует,
// возвращает ErrAlreadyRunning — это фатально на старте.
func AcquireLock(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if errors.Is(err, os.ErrExist) {
		return nil, ErrAlreadyRunning
	}
	if err != nil {
		return nil, fmt.Errorf("создание lock-файла: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(strconv.Itoa(os.Getpid())); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("запись PID в lock-файл: %w", err)
	}
	return &Lock{path: path}, nil
}

// Release удаляет lock-файл. Ошибки глотаются — на выходе уже всё равно.
func (l *Lock) Release() {
	if l == nil {
		return
	}
	os.Remove(l.path)
}
