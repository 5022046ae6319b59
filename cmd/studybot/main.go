package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/blueberryyyy11/vormizduxt/internal/apptime"
	"github.com/blueberryyyy11/vormizduxt/internal/config"
	"github.com/blueberryyyy11/vormizduxt/internal/handlers"
	"github.com/blueberryyyy11/vormizduxt/internal/homework"
	"github.com/blueberryyyy11/vormizduxt/internal/reminder"
	"github.com/blueberryyyy11/vormizduxt/internal/storage"
	"github.com/blueberryyyy11/vormizduxt/internal/timetable"
)

func main() {
	// .env опционален: в деплое переменные приходят из окружения.
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	setupLogging(cfg.LogFile)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}
	apptime.SetLocation(loc)

	// Lock-файл — единственная фатальная ошибка после старта конфига:
	// два бота над одними JSON-файлами затирают друг друга.
	lock, err := storage.AcquireLock(cfg.LockFile)
	if errors.Is(err, storage.ErrAlreadyRunning) {
		log.Printf("Бот уже запущен. Если это не так, удалите файл %q и попробуйте снова.", cfg.LockFile)
		fmt.Fprintf(os.Stderr, "Error: another bot instance is already running (lock file %s).\n", cfg.LockFile)
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("Ошибка lock-файла: %v", err)
	}
	defer lock.Release()

	store, err := storage.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("Ошибка хранилища: %v", err)
	}
	hwStore := homework.NewStore(store)
	ttStore := timetable.NewStore(store)

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		log.Fatalf("Ошибка подключения к Telegram: %v", err)
	}
	log.Printf("Авторизован как %s", bot.Self.UserName)

	setBotCommands(bot)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := reminder.New(hwStore, ttStore, handlers.NewTelegramSender(bot), apptime.Now)
	go sched.Run(ctx)

	h := handlers.New(bot, hwStore, ttStore, apptime.Now)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	log.Println("Бот запущен, слушаю обновления")
	for {
		select {
		case <-ctx.Done():
			log.Println("Получен сигнал остановки, выходим")
			bot.StopReceivingUpdates()
			return
		case update := <-updates:
			h.ProcessMessage(&update)
		}
	}
}

// setBotCommands наполняет меню команд в клиенте Telegram.
func setBotCommands(bot *tgbotapi.BotAPI) {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "hw_add", Description: "Добавить домашку"},
		tgbotapi.BotCommand{Command: "hw_list", Description: "Список домашек"},
		tgbotapi.BotCommand{Command: "hw_remove", Description: "Удалить домашку"},
		tgbotapi.BotCommand{Command: "hw_today", Description: "Что сдавать сегодня"},
		tgbotapi.BotCommand{Command: "hw_overdue", Description: "Просроченное"},
		tgbotapi.BotCommand{Command: "hw_stats", Description: "Статистика"},
		tgbotapi.BotCommand{Command: "hw_clean", Description: "Убрать старые задания"},
		tgbotapi.BotCommand{Command: "schedule", Description: "Пары сегодня"},
		tgbotapi.BotCommand{Command: "schedule_week", Description: "Расписание на неделю"},
		tgbotapi.BotCommand{Command: "next", Description: "Ближайшие пары"},
		tgbotapi.BotCommand{Command: "reminders", Description: "Напоминания on/off"},
		tgbotapi.BotCommand{Command: "motivate", Description: "Мотивация"},
	)
	if _, err := bot.Request(commands); err != nil {
		log.Printf("Не удалось задать меню команд: %v", err)
	}
}

// setupLogging дублирует лог в stdout и файл, как делалось всегда.
func setupLogging(path string) {
	if path == "" {
		return
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("Не удалось создать каталог для лога: %v", err)
			return
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("Не удалось открыть лог-файл %s: %v", path, err)
		return
	}
	log.SetOutput(io.MultiWriter(os.Stdout, f))
}
