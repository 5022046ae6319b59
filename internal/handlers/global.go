package handlers

// Состояния пошагового добавления домашки (/hw_add без аргументов).
const (
	StateAwaitingSubject = "awaiting_subject"
	StateAwaitingTask    = "awaiting_task"
	StateAwaitingDue     = "awaiting_due"
)

// chatUser — ключ состояния диалога: один черновик на пользователя в чате.
type chatUser struct {
	ChatID int64
	UserID int64
}

// draft — накопленные ответы пошагового добавления домашки.
type draft struct {
	State   string
	Subject string
	Task    string
}
