package clinicstore

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента (запрос не удалось выполнить)
	ErrInternal = errors.New("clinicstore client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от хранилища
	ErrInvalidResponse = errors.New("clinicstore client: invalid response")

	// ErrRejected возвращается, когда хранилище отклонило запрос как некорректный
	ErrRejected = errors.New("clinicstore client: request rejected")
)
