package cancel_appointment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/cancel_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// sharedStore одно хранилище записей для обоих use case
type sharedStore struct {
	items  []*domain.Appointment
	nextID int64
}

func (s *sharedStore) LockSlot(context.Context, domain.SlotKey) error {
	return nil
}

func (s *sharedStore) CountBySlot(_ context.Context, key domain.SlotKey) (int, error) {
	count := 0
	for _, a := range s.items {
		if a.Key() == key {
			count++
		}
	}
	return count, nil
}

func (s *sharedStore) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	s.nextID++
	created := *a
	created.ID = s.nextID
	s.items = append(s.items, &created)
	return &created, nil
}

func (s *sharedStore) FindFirstBySlot(_ context.Context, key domain.SlotKey) (*domain.Appointment, error) {
	var first *domain.Appointment
	for _, a := range s.items {
		if a.Key() == key && (first == nil || a.ID < first.ID) {
			first = a
		}
	}
	if first == nil {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return first, nil
}

func (s *sharedStore) Delete(_ context.Context, id int64) error {
	for i, a := range s.items {
		if a.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return appointmentRepo.ErrAppointmentNotFound
}

type staticConfig struct {
	cfg *domain.Configuration
}

func (s staticConfig) Get(context.Context) (*domain.Configuration, error) {
	return s.cfg.Clone(), nil
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestBookThenCancel_RestoresSlotCount(t *testing.T) {
	ctx := context.Background()
	cfg := domain.DefaultConfiguration()
	cfg.MaxSlotsPerAppointment = 3

	// понедельник в будущем: use case берут текущее время из RealTimeProvider
	const date, tm = "2099-06-15", "10:00"
	key := domain.SlotKey{Date: types.MustDate(date), Time: types.MustTimeString(tm)}

	store := &sharedStore{}
	_, err := store.Create(ctx, &domain.Appointment{Date: key.Date, Time: key.Time})
	require.NoError(t, err)

	bookUC := book_appointment.NewUseCase(store, staticConfig{cfg: cfg}, nil, inlineTx{}, time.UTC, logger.NewNop())
	cancelUC := cancel_appointment.NewUseCase(store, staticConfig{cfg: cfg}, inlineTx{}, time.UTC, logger.NewNop())

	before, err := store.CountBySlot(ctx, key)
	require.NoError(t, err)
	require.Equal(t, 1, before)

	created, err := bookUC.Execute(ctx, &book_appointment.Request{Date: date, Time: tm})
	require.NoError(t, err)

	during, err := store.CountBySlot(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, before+1, during)

	_, err = cancelUC.Execute(ctx, &cancel_appointment.Request{Date: date, Time: tm})
	require.NoError(t, err)

	after, err := store.CountBySlot(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	// отменяется самая старая запись, созданная остается
	require.Len(t, store.items, 1)
	assert.Equal(t, created.ID, store.items[0].ID)
}
