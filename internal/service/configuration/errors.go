package configuration

import "errors"

var (
	// ErrConfigurationNotFound возвращается, когда конфигурация не создана
	ErrConfigurationNotFound = errors.New("configuration.service: configuration not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("configuration.service: internal error")
)
