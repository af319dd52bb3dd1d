package idempotency

import "errors"

var (
	// ErrRecordNotFound возвращается, когда ключ отсутствует в хранилище
	ErrRecordNotFound = errors.New("idempotency.store: record not found")

	// ErrStore возвращается при ошибках Redis
	ErrStore = errors.New("idempotency.store: redis error")

	// ErrDecode возвращается, когда сохраненное значение не удалось разобрать
	ErrDecode = errors.New("idempotency.store: failed to decode record")
)
