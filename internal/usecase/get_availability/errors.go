package get_availability

import "errors"

var (
	// ErrPractitionerNotFound возвращается, когда врач не найден или неактивен
	ErrPractitionerNotFound = errors.New("get_availability: practitioner not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
