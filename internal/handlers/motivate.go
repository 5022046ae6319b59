package handlers

import "math/rand"

// Дежурные фразы для /motivate.
var motivationLines = []string{
	"soberis tryapka",
	"hishi vor mard ka qeznic poqr a u arden senior a",
	"Нечетное число - это НЕ четное число",
	"Меня не интересуют твои вопросы. Доказывай.",
	"Я ответил на ваш вопрос?",
	"es im vaxtov jamy 4in ei zartnum vor matanaliz anei",
}

func (h *Handler) motivate(chatID int64) {
	h.reply(chatID, motivationLines[rand.Intn(len(motivationLines))])
}
