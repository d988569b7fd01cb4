package generate_daily_slots

import "errors"

var (
	// ErrAlreadyRunning возвращается, когда генерация на ту же дату уже выполняется
	ErrAlreadyRunning = errors.New("generate_daily_slots: generation is already running")

	// ErrInvalidConfig возвращается при некорректных настройках генерации
	ErrInvalidConfig = errors.New("generate_daily_slots: invalid configuration")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_daily_slots: internal error")
)
