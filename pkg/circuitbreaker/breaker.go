package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State состояние предохранителя
type State uint8

const (
	Closed State = iota + 1
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrOpen возвращается без вызова внешней системы, пока предохранитель открыт
var ErrOpen = errors.New("circuitbreaker: circuit is open")

// Settings параметры предохранителя
type Settings struct {
	// Длина окна последних запросов
	WindowSize int
	// Доля ошибок в окне, при которой предохранитель размыкается
	FailureRatio float64
	// Сколько ждать перед пробными запросами
	OpenTimeout time.Duration
	// Сколько успешных пробных запросов подряд нужно для замыкания
	RecoveryRequests int
}

// Breaker предохранитель со скользящим окном результатов
type Breaker struct {
	mu       sync.Mutex
	settings Settings
	now      func() time.Time

	state    State
	window   []bool
	pos      int
	filled   int
	openedAt time.Time
	success  int
}

// New создаёт предохранитель. Нулевые параметры заменяются значениями по умолчанию.
func New(s Settings) *Breaker {
	if s.WindowSize <= 0 {
		s.WindowSize = 20
	}
	if s.FailureRatio <= 0 || s.FailureRatio > 1 {
		s.FailureRatio = 0.5
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = 10 * time.Second
	}
	if s.RecoveryRequests <= 0 {
		s.RecoveryRequests = 3
	}

	return &Breaker{
		settings: s,
		now:      time.Now,
		state:    Closed,
		window:   make([]bool, s.WindowSize),
	}
}

// State возвращает текущее состояние
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Call выполняет fn, если предохранитель не разомкнут
func (b *Breaker) Call(fn func() error) error {
	b.mu.Lock()
	if b.state == Open {
		if b.now().Sub(b.openedAt) < b.settings.OpenTimeout {
			b.mu.Unlock()
			return ErrOpen
		}
		b.state = HalfOpen
		b.success = 0
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == HalfOpen {
		if err != nil {
			b.trip()
			return err
		}
		b.success++
		if b.success >= b.settings.RecoveryRequests {
			b.reset()
		}
		return nil
	}

	b.record(err != nil)

	// Решение принимаем только на заполненном окне
	if b.filled == len(b.window) && b.failureRatio() >= b.settings.FailureRatio {
		b.trip()
	}

	return err
}

// Reset возвращает предохранитель в замкнутое состояние
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
}

func (b *Breaker) record(failed bool) {
	b.window[b.pos] = failed
	b.pos = (b.pos + 1) % len(b.window)
	if b.filled < len(b.window) {
		b.filled++
	}
}

func (b *Breaker) failureRatio() float64 {
	fails := 0
	for _, failed := range b.window {
		if failed {
			fails++
		}
	}
	return float64(fails) / float64(len(b.window))
}

func (b *Breaker) trip() {
	b.state = Open
	b.success = 0
	b.openedAt = b.now()
}

func (b *Breaker) reset() {
	for i := range b.window {
		b.window[i] = false
	}
	b.pos = 0
	b.filled = 0
	b.success = 0
	b.state = Closed
}
