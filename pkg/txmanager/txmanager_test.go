package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
)

type fakeTx struct {
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	txs   []*fakeTx
	opts  []*sql.TxOptions
	begin error
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if b.begin != nil {
		return nil, b.begin
	}
	idx := len(b.opts)
	if idx >= len(b.txs) {
		b.txs = append(b.txs, &fakeTx{})
	}
	tx := b.txs[idx]
	b.opts = append(b.opts, opts)
	return tx, nil
}

func TestDo_CommitsAndPassesTxInContext(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	require.Len(t, beginner.txs, 1)
	assert.True(t, beginner.txs[0].committed)
	assert.Equal(t, sql.LevelReadCommitted, beginner.opts[0].Isolation)
}

func TestDo_RollsBackOnError(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)
	boom := errors.New("boom")

	err := m.Do(context.Background(), func(context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.True(t, beginner.txs[0].rolledBack)
	assert.False(t, beginner.txs[0].committed)
}

func TestDo_NestedReusesOuterTransaction(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Len(t, beginner.opts, 1)
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	beginner := &fakeBeginner{
		txs: []*fakeTx{
			{commitErr: &pq.Error{Code: "40001"}},
			{},
		},
	}
	m := NewTransactionManager(beginner)

	calls := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, sql.LevelSerializable, beginner.opts[1].Isolation)
}

func TestDoSerializable_DoesNotRetryOtherErrors(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	calls := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		calls++
		return errors.New("validation failed")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_BeginError(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{begin: errors.New("no connection")})

	err := m.Do(context.Background(), func(context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrBeginTx)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", &pq.Error{Code: "40P01"})))
	assert.False(t, IsRetryable(&pq.Error{Code: "23505"}))
	assert.False(t, IsRetryable(errors.New("plain")))
}
