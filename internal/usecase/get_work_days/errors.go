package get_work_days

import "errors"

var (
	// ErrPractitionerNotFound возвращается, когда врач не найден или неактивен
	ErrPractitionerNotFound = errors.New("get_work_days: practitioner not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_work_days: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_work_days: internal error")
)
