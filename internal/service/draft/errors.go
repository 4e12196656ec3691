package draft

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrValidation возвращается, когда условие шага не выполнено
	// Конкретные поля передаются через *ValidationError
	ErrValidation = errors.New("draft: validation failed")

	// ErrInvalidTransition возвращается для события, недопустимого на текущем шаге
	ErrInvalidTransition = errors.New("draft: invalid transition")

	// ErrDraftClosed возвращается при изменении уже отправленного черновика
	ErrDraftClosed = errors.New("draft: draft is already submitted")

	// ErrSubmitInProgress возвращается, пока идет отправка черновика
	ErrSubmitInProgress = errors.New("draft: submit is in progress")
)

// ValidationError ошибки полей конкретного шага
type ValidationError struct {
	Step   Step
	Fields map[string]string
}

func newValidationError(step Step, field, message string) *ValidationError {
	return &ValidationError{Step: step, Fields: map[string]string{field: message}}
}

// Error реализует error
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return fmt.Sprintf("%s: step %s: %s", ErrValidation, e.Step, strings.Join(parts, "; "))
}

// Is позволяет сравнивать через errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
