package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const keyPrefix = "appointments:idempotency:"

// Store хранилище ключей идемпотентности в Redis
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore создает хранилище. ttl задает время жизни ключа.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Get возвращает запись по ключу или ErrRecordNotFound
func (s *Store) Get(ctx context.Context, key string) (*Record, error) {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("%w: Get - %v", ErrStore, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &rec, nil
}

// Reserve атомарно занимает ключ (SET NX) для запроса на слот.
// Возвращает false, если ключ уже занят другим запросом.
func (s *Store) Reserve(ctx context.Context, key string, slot domain.SlotKey) (bool, error) {
	data, err := json.Marshal(Record{
		Status: StatusPending,
		Date:   slot.Date.String(),
		Time:   slot.Time.String(),
	})
	if err != nil {
		return false, fmt.Errorf("%w: Reserve - encode: %v", ErrStore, err)
	}

	ok, err := s.client.SetNX(ctx, keyPrefix+key, data, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: Reserve - %v", ErrStore, err)
	}
	return ok, nil
}

// Complete сохраняет результат успешной записи под ранее занятым ключом
func (s *Store) Complete(ctx context.Context, key string, appointment *domain.Appointment) error {
	data, err := json.Marshal(Record{
		Status:        StatusCompleted,
		Date:          appointment.Date.String(),
		Time:          appointment.Time.String(),
		AppointmentID: appointment.ID,
	})
	if err != nil {
		return fmt.Errorf("%w: Complete - encode: %v", ErrStore, err)
	}

	if err := s.client.Set(ctx, keyPrefix+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Complete - %v", ErrStore, err)
	}
	return nil
}

// Release освобождает ключ после неуспешного запроса, чтобы клиент мог повторить его
func (s *Store) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("%w: Release - %v", ErrStore, err)
	}
	return nil
}

// PingContext проверяет соединение с Redis
func (s *Store) PingContext(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
