package commit_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("commit_booking: service not found")

	// ErrPractitionerNotFound возвращается, когда врач не найден или неактивен
	ErrPractitionerNotFound = errors.New("commit_booking: practitioner not found")

	// ErrPatientNotFound возвращается, когда существующий пациент не найден
	ErrPatientNotFound = errors.New("commit_booking: patient not found")

	// ErrKindMismatch возвращается, когда вид записи не соответствует классификации услуги
	ErrKindMismatch = errors.New("commit_booking: booking kind does not match service")

	// ErrPriceMismatch возвращается, когда цена в записи расходится с каталогом
	ErrPriceMismatch = errors.New("commit_booking: price does not match catalog")

	// ErrInvalidPlan возвращается, когда план лечения не совпадает с пересчитанным
	ErrInvalidPlan = errors.New("commit_booking: invalid treatment plan")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("commit_booking: invalid booking date")

	// ErrNotWorkingDay возвращается, когда врач не работает в этот день недели
	ErrNotWorkingDay = errors.New("commit_booking: practitioner does not work on this day")

	// ErrInvalidTimeSlot возвращается, когда время не входит в сетку слотов
	ErrInvalidTimeSlot = errors.New("commit_booking: invalid time slot")

	// ErrTooLateToBook возвращается, когда слот начинается раньше минимального времени записи
	ErrTooLateToBook = errors.New("commit_booking: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда слот уже занят
	ErrSlotNotAvailable = errors.New("commit_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("commit_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("commit_booking: internal error")
)
