package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Сентинельные ошибки доменного слоя. Сервисы заворачивают их через %w,
// хендлеры распаковывают errors.Is и подбирают HTTP-статус.
var (
	ErrNotFound         = errors.New("не найдено")
	ErrForbidden        = errors.New("доступ запрещен")
	ErrInvalidOperation = errors.New("недопустимая операция")
	ErrConflict         = errors.New("конфликт уникальности")
)

func NotFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}

func Forbidden(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrForbidden)
}

func InvalidOperation(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrInvalidOperation)
}

func Conflict(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrConflict)
}

// FieldError - одна ошибка валидации конкретного поля
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError - список ошибок валидации входных данных
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "ошибка валидации: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// AsValidation возвращает *ValidationError, если err им является
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
