package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotNotAvailable возвращается, когда условное обновление не нашло свободный слот
	ErrSlotNotAvailable = errors.New("slot.repository: slot not available")

	// ErrSlotNotReserved возвращается, когда условное обновление не нашло занятый слот
	ErrSlotNotReserved = errors.New("slot.repository: slot not reserved")

	// ErrInvalidAvailability возвращается при попытке установить недопустимое состояние
	ErrInvalidAvailability = errors.New("slot.repository: invalid availability")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
