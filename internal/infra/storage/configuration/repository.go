package configuration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const tableConfiguration = "configuration"

var configurationColumns = []string{
	"id",
	"slot_duration",
	"max_slots_per_appointment",
	"operational_start",
	"operational_end",
	"days_off",
	"unavailable_hours",
	"is_weekend_off",
	"updated_at",
}

// Repository репозиторий единственной строки конфигурации
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get читает конфигурацию. Кэширования нет: каждое обращение идет в БД.
func (r *Repository) Get(ctx context.Context) (*domain.Configuration, error) {
	return r.get(ctx, false)
}

// GetForUpdate читает конфигурацию с блокировкой строки (FOR UPDATE).
// Вне транзакции ведет себя как Get.
func (r *Repository) GetForUpdate(ctx context.Context) (*domain.Configuration, error) {
	return r.get(ctx, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) get(ctx context.Context, forUpdate bool) (*domain.Configuration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(configurationColumns...).
		From(tableConfiguration).
		Where(squirrel.Eq{"id": domain.ConfigurationID})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	cfg, err := scanConfiguration(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("%w: Get - %v", ErrScanRow, err)
	}

	return cfg, nil
}

// Update сохраняет все поля конфигурации
func (r *Repository) Update(ctx context.Context, cfg *domain.Configuration) (*domain.Configuration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableConfiguration).
		Set("slot_duration", cfg.SlotDuration).
		Set("max_slots_per_appointment", cfg.MaxSlotsPerAppointment).
		Set("operational_start", cfg.OperationalStart).
		Set("operational_end", cfg.OperationalEnd).
		Set("days_off", cfg.FormatDaysOff()).
		Set("unavailable_hours", cfg.FormatUnavailableHours()).
		Set("is_weekend_off", cfg.IsWeekendOff).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": domain.ConfigurationID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated := cfg.Clone()
	updated.ID = domain.ConfigurationID

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}
	updated.UpdatedAt = updatedAt.Time

	return updated, nil
}

// EnsureDefault создает строку конфигурации, если её ещё нет.
// Возвращает true, если строка была создана.
func (r *Repository) EnsureDefault(ctx context.Context, cfg *domain.Configuration) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableConfiguration).
		Columns(
			"id",
			"slot_duration",
			"max_slots_per_appointment",
			"operational_start",
			"operational_end",
			"days_off",
			"unavailable_hours",
			"is_weekend_off",
		).
		Values(
			domain.ConfigurationID,
			cfg.SlotDuration,
			cfg.MaxSlotsPerAppointment,
			cfg.OperationalStart,
			cfg.OperationalEnd,
			cfg.FormatDaysOff(),
			cfg.FormatUnavailableHours(),
			cfg.IsWeekendOff,
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: EnsureDefault - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: EnsureDefault - execute insert: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: EnsureDefault - rows affected: %v", ErrExecQuery, err)
	}

	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConfiguration(row rowScanner) (*domain.Configuration, error) {
	var (
		cfg              domain.Configuration
		daysOff          string
		unavailableHours string
		updatedAt        sql.NullTime
	)

	err := row.Scan(
		&cfg.ID,
		&cfg.SlotDuration,
		&cfg.MaxSlotsPerAppointment,
		&cfg.OperationalStart,
		&cfg.OperationalEnd,
		&daysOff,
		&unavailableHours,
		&cfg.IsWeekendOff,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	cfg.DaysOff, err = domain.ParseDaysOff(daysOff)
	if err != nil {
		return nil, fmt.Errorf("days_off: %w", err)
	}
	cfg.UnavailableHours, err = domain.ParseUnavailableHours(unavailableHours)
	if err != nil {
		return nil, fmt.Errorf("unavailable_hours: %w", err)
	}
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}
