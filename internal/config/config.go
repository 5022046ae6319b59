// Package config — настройки бота: config.yaml плюс переменные окружения.
// Переменные окружения всегда побеждают файл — так проще в деплое.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config — настройки процесса. Токен обязателен, остальное с дефолтами.
type Config struct {
	Token    string `yaml:"token"`
	DataDir  string `yaml:"data_dir"`
	LockFile string `yaml:"lock_file"`
	LogFile  string `yaml:"log_file"`
	Timezone string `yaml:"timezone"`
}

// ErrNoToken — не задан токен Telegram-бота.
var ErrNoToken = errors.New("TELEGRAM_BOT_TOKEN is required")

// Load читает config.yaml (если он есть) и накладывает переменные окружения.
func Load(path string) (Config, error) {
	cfg := Config{
		DataDir:  "data",
		LockFile: "bot.lock",
		LogFile:  "bot.log",
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("разбор %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("чтение %s: %w", path, err)
	}

	applyEnv(&cfg.Token, "TELEGRAM_BOT_TOKEN")
	applyEnv(&cfg.DataDir, "DATA_DIR")
	applyEnv(&cfg.LockFile, "LOCK_FILE")
	applyEnv(&cfg.LogFile, "LOG_FILE")
	applyEnv(&cfg.Timezone, "TIMEZONE")

	if cfg.Token == "" {
		return Config{}, ErrNoToken
	}
	return cfg, nil
}

func applyEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// Location возвращает таймзону приложения. Пустое значение — локальная зона
// машины, на которой крутится бот.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("таймзона %q: %w", c.Timezone, err)
	}
	return loc, nil
}
