package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes     = 30
	DefaultMinBookingNoticeMinutes = 60 // 1 hour
	DefaultSessionCount            = 1
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480 // 8 hours
	MinBookingNoticeMinutes     = 0
	MaxBookingNoticeMinutes     = 10080 // 1 week
	MinSessionCount             = 1
	MaxSessionCount             = 60 // 5 years of monthly sessions
	MaxCancellationReasonLength = 500
	MaxNameLength               = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов неактивных записей
// Такие записи не занимают слот
var InactiveStatuses = []BookingStatus{
	StatusCancelledByPatient,
	StatusCancelledByClinic,
	StatusNoShow,
}

// ActiveStatuses список статусов активных записей
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
