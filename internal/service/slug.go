package service

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

const wordsPerMinute = 200

// Slugify приводит заголовок к URL-безопасному виду: нижний регистр,
// только латиница/цифры/дефисы, пробелы схлопываются в один дефис.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // срезает дефисы в начале

	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// MakeSlug добавляет к слагу временной суффикс, гарантирующий уникальность;
// при конфликте вызывающая сторона повторяет с новым суффиксом
func MakeSlug(title string, now time.Time) string {
	base := Slugify(title)
	if base == "" {
		base = "blog"
	}
	return fmt.Sprintf("%s-%d", base, now.UnixMilli())
}

// ComputeReadTime - минуты чтения из расчёта 200 слов в минуту, минимум 1
func ComputeReadTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 1
	}

	readTime := (words + wordsPerMinute - 1) / wordsPerMinute
	if readTime < 1 {
		readTime = 1
	}
	return readTime
}

// DeriveExcerpt - первые 300 символов контента с многоточием,
// если выдержка не задана явно
func DeriveExcerpt(excerpt, content string) string {
	if excerpt != "" {
		return excerpt
	}

	runes := []rune(content)
	if len(runes) <= 300 {
		return content
	}
	return string(runes[:300]) + "..."
}
