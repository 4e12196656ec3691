package schedule

import "github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"

// DBExecutor интерфейс для выполнения запросов (БД или транзакция)
type DBExecutor = dbmetrics.DBExecutor
