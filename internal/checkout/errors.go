package checkout

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCart  = errors.New("cart is empty")
	ErrNotAllowed = errors.New("action not allowed in current step")
)

// ValidationError — не заполнены обязательные поля контакта. Ошибка
// локальная: шаг не меняется, пользователь исправляет поля и повторяет.
type ValidationError struct {
	Fields []Field
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = string(f)
	}
	return fmt.Sprintf("missing required fields: %s", strings.Join(names, ", "))
}

func (e *ValidationError) Has(f Field) bool {
	for _, x := range e.Fields {
		if x == f {
			return true
		}
	}
	return false
}
