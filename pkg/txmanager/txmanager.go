package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
)

const (
	// pq код ошибки сериализации
	serializationFailureCode = "40001"
	// pq код обнаруженной взаимоблокировки
	deadlockDetectedCode = "40P01"

	defaultMaxRetries = 3
	defaultBackoff    = 20 * time.Millisecond
)

var (
	// ErrBeginTx ошибка открытия транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx ошибка фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrRetriesExhausted все попытки сериализуемой транзакции завершились конфликтом
	ErrRetriesExhausted = errors.New("txmanager: serialization retries exhausted")
)

// RetryObserver получает уведомления о повторах (метрики)
type RetryObserver interface {
	IncTxRetry(isolation string)
}

// Option настройка менеджера транзакций
type Option func(*TransactionManager)

// WithMaxRetries задаёт количество повторов сериализуемой транзакции
func WithMaxRetries(n int) Option {
	return func(m *TransactionManager) {
		if n >= 0 {
			m.maxRetries = n
		}
	}
}

// WithBackoff задаёт базовую паузу между повторами
func WithBackoff(d time.Duration) Option {
	return func(m *TransactionManager) {
		m.backoff = d
	}
}

// WithRetryObserver подключает учёт повторов
func WithRetryObserver(o RetryObserver) Option {
	return func(m *TransactionManager) {
		m.observer = o
	}
}

// TransactionManager выполняет функцию в транзакции, передавая её через контекст.
// Репозитории получают транзакцию через dbmetrics.GetExecutor.
type TransactionManager struct {
	db         dbmetrics.TxBeginner
	maxRetries int
	backoff    time.Duration
	observer   RetryObserver
}

// NewTransactionManager создаёт менеджер транзакций.
// db - *dbmetrics.DB или *dbmetrics.SqlDBWrapper.
func NewTransactionManager(db dbmetrics.TxBeginner, opts ...Option) *TransactionManager {
	m := &TransactionManager{
		db:         db,
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DoReadOnly выполняет fn в транзакции только для чтения на одном снимке (REPEATABLE READ).
// Блокирующие чтения (FOR UPDATE) в ней недопустимы.
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в SERIALIZABLE транзакции.
// При ошибке сериализации (40001) или взаимоблокировке (40P01) транзакция повторяется целиком.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		if attempt > 0 {
			if m.observer != nil {
				m.observer.IncTxRetry("serializable")
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(m.backoff * time.Duration(attempt)):
			}
		}

		err = m.run(ctx, opts, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}
	}

	return fmt.Errorf("%w: %v", ErrRetriesExhausted, err)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}

	return nil
}

// IsRetryable сообщает, можно ли повторить транзакцию после ошибки
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == serializationFailureCode || pqErr.Code == deadlockDetectedCode
	}
	return false
}
