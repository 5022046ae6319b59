// Package markup — экранирование MarkdownV2 и сборка текстов сообщений.
package markup

import "strings"

// specialChars — символы, которые Telegram MarkdownV2 требует экранировать.
// Бэкслеш идёт первым: иначе экранирование остальных символов
// задвоит уже расставленные слеши.
var specialChars = []string{
	"\\", "_", "*", "[", "]", "(", ")", "~", "`", ">", "#", "+", "-", "=", "|", "{", "}", ".", "!",
}

// EscapeMarkdown экранирует пользовательский текст для вставки в MarkdownV2.
func EscapeMarkdown(text string) string {
	for _, ch := range specialChars {
		text = strings.ReplaceAll(text, ch, "\\"+ch)
	}
	return text
}
