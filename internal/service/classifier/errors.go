package classifier

import "errors"

// ErrInvalidService возвращается для отсутствующей или некорректной услуги
var ErrInvalidService = errors.New("classifier: invalid service")
