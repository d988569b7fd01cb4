package reservation

import "github.com/m04kA/SMC-PadelBookingService/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Имена ограничений из migrations/001_init.up.sql
const (
	constraintUniqueSlot = "uq_reservations_slot"
	constraintSlotFK     = "fk_reservations_slot"
	constraintUserFK     = "fk_reservations_user"
)

// Коды ошибок PostgreSQL
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)
