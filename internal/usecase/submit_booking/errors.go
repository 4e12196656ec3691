package submit_booking

import "errors"

var (
	// ErrSlotConflict возвращается, когда выбранный слот уже занят.
	// Черновик возвращается на шаг расписания с очищенными датой и временем
	ErrSlotConflict = errors.New("submit_booking: slot is no longer available")

	// ErrSubmitTransport возвращается, когда хранилище не приняло запись по иной причине.
	// Черновик не меняется, отправку можно повторить
	ErrSubmitTransport = errors.New("submit_booking: failed to commit booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_booking: invalid input data")
)
