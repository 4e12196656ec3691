package abandon_draft

// DraftRegistry реестр черновиков записи
type DraftRegistry interface {
	Abandon(id string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
