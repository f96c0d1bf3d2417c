package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownStyle возвращается для неподдерживаемого стиля.
var ErrUnknownStyle = errors.New("unknown style")

// Style: художественный стиль визуализации.
type Style string

const (
	StyleUkiyoE     Style = "ukiyo-e"
	StyleSumiE      Style = "sumi-e"
	StyleMinimalist Style = "minimalist"

	// DefaultStyle используется, если стиль не указан.
	DefaultStyle = StyleUkiyoE
)

// Styles возвращает все поддерживаемые стили в порядке объявления.
func Styles() []Style {
	return []Style{StyleUkiyoE, StyleSumiE, StyleMinimalist}
}

// ParseStyle парсит строку в Style. Пустая строка даёт DefaultStyle.
func ParseStyle(s string) (Style, error) {
	if s == "" {
		return DefaultStyle, nil
	}
	for _, st := range Styles() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStyle, s)
}

// String возвращает строковое представление Style.
func (s Style) String() string {
	return string(s)
}
