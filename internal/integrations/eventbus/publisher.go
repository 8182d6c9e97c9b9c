package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// channel подмножество *amqp.Channel, используемое издателем
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher публикует события заказов в topic exchange RabbitMQ.
// Канал AMQP не потокобезопасен, публикации сериализуются мьютексом.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       channel
	exchange string
	timeout  time.Duration
	logger   Logger
	closed   bool
}

// NewPublisher подключается к брокеру и объявляет durable topic exchange
func NewPublisher(url, exchange string, timeout time.Duration, logger Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	logger.Info("Event publisher connected, exchange=%s", exchange)

	p := newPublisher(ch, exchange, timeout, logger)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange string, timeout time.Duration, logger Logger) *Publisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Publisher{
		ch:       ch,
		exchange: exchange,
		timeout:  timeout,
		logger:   logger,
	}
}

// Publish отправляет событие с routing key, равным типу события
func (p *Publisher) Publish(ctx context.Context, event OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, event.Type, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Type:         string(event.Type),
		Timestamp:    event.OccurredAt,
		Body:         body,
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}

	if err := p.ch.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, msg); err != nil {
		return fmt.Errorf("%w: %s order=%d: %v", ErrPublish, event.Type, event.OrderID, err)
	}

	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if err := p.ch.Close(); err != nil {
		p.logger.Warn("Event publisher: close channel: %v", err)
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher используется, когда публикация событий выключена
type NopPublisher struct{}

// Publish ничего не делает
func (NopPublisher) Publish(context.Context, OrderEvent) error { return nil }

// Close ничего не делает
func (NopPublisher) Close() error { return nil }
