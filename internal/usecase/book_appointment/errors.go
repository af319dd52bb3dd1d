package book_appointment

import "errors"

var (
	// ErrConfigurationNotFound возвращается, когда конфигурация не создана
	ErrConfigurationNotFound = errors.New("book_appointment: configuration not found")

	// ErrIdempotencyMismatch возвращается, когда ключ идемпотентности уже использован для другого слота
	ErrIdempotencyMismatch = errors.New("book_appointment: idempotency key reused with a different payload")

	// ErrIdempotencyInProgress возвращается, когда запрос с тем же ключом еще выполняется
	ErrIdempotencyInProgress = errors.New("book_appointment: request with this idempotency key is in progress")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
