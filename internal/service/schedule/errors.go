package schedule

import "errors"

var (
	// ErrPractitionerNotFound возвращается, когда врач не найден
	ErrPractitionerNotFound = errors.New("schedule: practitioner not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule: invalid input data")

	// ErrDuplicateWeekday возвращается, когда на один день недели задано несколько правил
	ErrDuplicateWeekday = errors.New("schedule: duplicate rule for weekday")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
