package cancel_appointment

import "errors"

var (
	// ErrConfigurationNotFound возвращается, когда конфигурация не создана
	ErrConfigurationNotFound = errors.New("cancel_appointment: configuration not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_appointment: internal error")
)
