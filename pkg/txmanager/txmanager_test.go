package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
	commitErr  error
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
	txs      []*fakeTx
	opts     []*sql.TxOptions
	beginErr error
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	tx := &fakeTx{}
	b.txs = append(b.txs, tx)
	b.opts = append(b.opts, opts)
	return tx, nil
}

type countingObserver struct{ retries int }

func (o *countingObserver) IncTxRetry(string) { o.retries++ }

func TestDoReadOnly_CommitsOnSuccess(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.DoReadOnly(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].committed)
	assert.False(t, db.txs[0].rolledBack)
}

func TestDoReadOnly_RollsBackOnError(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)
	wantErr := errors.New("boom")

	err := m.DoReadOnly(context.Background(), func(ctx context.Context) error {
		return wantErr
	})

	require.ErrorIs(t, err, wantErr)
	assert.False(t, db.txs[0].committed)
	assert.True(t, db.txs[0].rolledBack)
}

func TestDoReadOnly_BeginError(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{beginErr: errors.New("no conn")})

	err := m.DoReadOnly(context.Background(), func(ctx context.Context) error { return nil })
	require.ErrorIs(t, err, ErrBeginTx)
}

func TestDoReadOnly_NestedReusesTransaction(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.DoReadOnly(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Len(t, db.txs, 1)
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	db := &fakeBeginner{}
	obs := &countingObserver{}
	m := NewTransactionManager(db, WithBackoff(time.Millisecond), WithRetryObserver(obs))

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("order.repository: failed to execute query: %w", &pq.Error{Code: "40001"})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, obs.retries)
	require.Len(t, db.txs, 3)
	assert.Equal(t, sql.LevelSerializable, db.opts[0].Isolation)
	assert.True(t, db.txs[2].committed)
}

func TestDoSerializable_RetriesExhausted(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db, WithMaxRetries(1), WithBackoff(time.Millisecond))

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return &pq.Error{Code: "40001"}
	})

	require.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Equal(t, 2, calls)
}

func TestDoSerializable_DoesNotRetryOtherErrors(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db, WithBackoff(time.Millisecond))

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return &pq.Error{Code: "23P01"}
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoSerializable_CommitFailureIsRetried(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db, WithBackoff(time.Millisecond))

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			tx, _ := dbmetrics.TxFromContext(ctx)
			tx.(*fakeTx).commitErr = &pq.Error{Code: "40001"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDoReadOnly_Options(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	require.NoError(t, m.DoReadOnly(context.Background(), func(ctx context.Context) error { return nil }))
	assert.True(t, db.opts[0].ReadOnly)
	assert.Equal(t, sql.LevelRepeatableRead, db.opts[0].Isolation)
}
