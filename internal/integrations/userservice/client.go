package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueBookingService/pkg/circuitbreaker"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с UserService
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *circuitbreaker.Breaker
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService.
// Пустой baseURL отключает интеграцию: скидка всегда 0.
func NewClient(baseURL string, timeout time.Duration, breaker *circuitbreaker.Breaker, log Logger) *Client {
	if breaker == nil {
		breaker = circuitbreaker.New(circuitbreaker.Settings{})
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breaker: breaker,
		log:     log,
	}
}

// GetUser получает пользователя по ID
func (c *Client) GetUser(ctx context.Context, userID int64) (*User, error) {
	if c.baseURL == "" {
		return nil, ErrDisabled
	}

	var (
		user     *User
		notFound bool
	)

	// 404 - бизнес-ответ, предохранитель считает его успехом
	err := c.breaker.Call(func() error {
		u, err := c.fetchUser(ctx, userID)
		if errors.Is(err, ErrUserNotFound) {
			notFound = true
			return nil
		}
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		if errors.Is(err, circuitbreaker.ErrOpen) {
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return nil, err
	}
	if notFound {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func (c *Client) fetchUser(ctx context.Context, userID int64) (*User, error) {
	url := fmt.Sprintf("%s/internal/users/%d", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid user ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &user, nil
}

// GetDiscountPercent возвращает процент скидки пользователя с graceful degradation.
// Любая ошибка (пользователь не найден, сервис недоступен) даёт скидку 0.
func (c *Client) GetDiscountPercent(ctx context.Context, userID int64) decimal.Decimal {
	if c.baseURL == "" {
		return decimal.Zero
	}

	user, err := c.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.log.Info("No user found for user_id=%d, discount not applied", userID)
			return decimal.Zero
		}

		c.log.Error("%v: user_id=%d, error=%v", ErrServiceDegraded, userID, err)
		return decimal.Zero
	}

	if user.DiscountPercent.IsNegative() {
		c.log.Warn("Negative discount %s for user_id=%d ignored", user.DiscountPercent.String(), userID)
		return decimal.Zero
	}

	c.log.Info("Fetched discount for user_id=%d, category=%s, percent=%s",
		userID, user.CitizenCategory, user.DiscountPercent.String())
	return user.DiscountPercent
}
