package get_available_slots

import "errors"

var (
	// ErrConfigurationNotFound возвращается, когда конфигурация не создана
	ErrConfigurationNotFound = errors.New("get_available_slots: configuration not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
