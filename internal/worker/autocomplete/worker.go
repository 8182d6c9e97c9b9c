// Package autocomplete периодически переводит прошедшие заказы в completed
package autocomplete

import (
	"context"
	"time"
)

// DefaultInterval интервал проверки по умолчанию
const DefaultInterval = 5 * time.Minute

// OrderCompleter завершение прошедших заказов
type OrderCompleter interface {
	CompleteOverdue(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Worker фоновая задача автозавершения заказов
type Worker struct {
	completer OrderCompleter
	interval  time.Duration
	logger    Logger
}

// NewWorker создает воркер, interval <= 0 заменяется на DefaultInterval
func NewWorker(completer OrderCompleter, interval time.Duration, logger Logger) *Worker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Worker{
		completer: completer,
		interval:  interval,
		logger:    logger,
	}
}

// Run выполняет проверку сразу и затем раз в interval до отмены ctx.
// Ошибки логируются и не останавливают воркер.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("AutoComplete: started, interval=%s", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("AutoComplete: stopped")
			return nil
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *Worker) sweep(ctx context.Context) {
	completed, err := w.completer.CompleteOverdue(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.Error("AutoComplete: sweep failed: %v", err)
		return
	}
	if completed > 0 {
		w.logger.Info("AutoComplete: completed %d orders", completed)
	}
}
