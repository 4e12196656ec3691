package sessions

import "errors"

// ErrDraftNotFound возвращается, когда черновик не найден, истек или был отменен
var ErrDraftNotFound = errors.New("sessions: draft not found")
