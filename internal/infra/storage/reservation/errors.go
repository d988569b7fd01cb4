package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSlotAlreadyReserved возвращается при нарушении уникальности slot_id
	ErrSlotAlreadyReserved = errors.New("reservation.repository: slot already has a reservation")

	// ErrSlotNotFound возвращается, когда слот бронирования не существует
	ErrSlotNotFound = errors.New("reservation.repository: slot not found")

	// ErrUserNotFound возвращается, когда пользователь бронирования не существует
	ErrUserNotFound = errors.New("reservation.repository: user not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
