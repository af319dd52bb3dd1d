package appointment

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

const (
	tableAppointments = "appointments"

	// slotLockPrefix префикс ключа advisory lock слота
	slotLockPrefix = "appointment:"
)

var appointmentColumns = []string{
	"id",
	"appointment_date",
	"appointment_time",
	"created_at",
}

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockSlot берет транзакционную advisory-блокировку на слот (date, time).
// Блокировка держится до конца транзакции, поэтому проверка вместимости и вставка
// для одного слота выполняются строго последовательно.
// Вызывается только внутри транзакции.
func (r *Repository) LockSlot(ctx context.Context, key domain.SlotKey) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNotInTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("pg_advisory_xact_lock(hashtext(?))", slotLockPrefix+key.String())).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockSlot - build lock query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: LockSlot - acquire lock for %s: %v", ErrExecQuery, key, err)
	}

	return nil
}

// Create создает новую запись
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableAppointments).
		Columns("appointment_date", "appointment_time").
		Values(appointment.Date, appointment.Time).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := *appointment
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	created.CreatedAt = createdAt.Time

	return &created, nil
}

// CountBySlot возвращает количество записей на слот
func (r *Repository) CountBySlot(ctx context.Context, key domain.SlotKey) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(tableAppointments).
		Where(squirrel.Eq{
			"appointment_date": key.Date,
			"appointment_time": key.Time,
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountBySlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountBySlot - execute select: %v", ErrExecQuery, err)
	}

	return count, nil
}

// FindMany возвращает записи на дату (и время, если задано), упорядоченные по времени и id
func (r *Repository) FindMany(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(appointmentColumns...).
		From(tableAppointments).
		Where(squirrel.Eq{"appointment_date": filter.Date}).
		OrderBy("appointment_time", "id")

	if !filter.Time.IsZero() {
		builder = builder.Where(squirrel.Eq{"appointment_time": filter.Time})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindMany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindMany - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: FindMany - %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindMany - iterate rows: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// FindFirstBySlot возвращает первую запись на слот (с наименьшим id).
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) FindFirstBySlot(ctx context.Context, key domain.SlotKey) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(appointmentColumns...).
		From(tableAppointments).
		Where(squirrel.Eq{
			"appointment_date": key.Date,
			"appointment_time": key.Time,
		}).
		OrderBy("id").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindFirstBySlot - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: FindFirstBySlot - %v", ErrScanRow, err)
	}

	return a, nil
}

// Delete удаляет запись по id
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableAppointments).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var createdAt sql.NullTime

	if err := row.Scan(&a.ID, &a.Date, &a.Time, &createdAt); err != nil {
		return nil, err
	}
	a.CreatedAt = createdAt.Time

	return &a, nil
}
