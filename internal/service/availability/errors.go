package availability

import "errors"

var (
	// ErrAvailabilityUnavailable возвращается, когда данные о доступности получить не удалось.
	// Ошибка повторяемая: отсутствие ответа не означает отсутствие свободных слотов
	ErrAvailabilityUnavailable = errors.New("availability: availability unavailable")

	// ErrInvalidRequest возвращается при некорректных параметрах запроса
	ErrInvalidRequest = errors.New("availability: invalid request")
)
