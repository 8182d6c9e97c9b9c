package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

const keyPrefix = "venue:catalog"

// errMiss ключ отсутствует в кэше
var errMiss = errors.New("catalog.cache: miss")

// Source источник данных каталога (репозиторий PostgreSQL)
type Source interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetResourcesForService(ctx context.Context, serviceID int64) ([]domain.Resource, error)
}

// Store хранилище байтов с TTL
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Cache read-through кэш каталога поверх Source.
// Ошибки Redis не прерывают чтение: запрос уходит в Source.
type Cache struct {
	source Source
	store  Store
	ttl    time.Duration
	logger Logger
}

// NewCache создает кэш каталога
func NewCache(source Source, store Store, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		source: source,
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// GetService получает услугу из кэша или источника
func (c *Cache) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	key := serviceKey(id)

	var cached domain.Service
	if c.load(ctx, key, &cached) {
		return &cached, nil
	}

	service, err := c.source.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	c.save(ctx, key, service)
	return service, nil
}

// GetResourcesForService получает ресурсы услуги из кэша или источника
func (c *Cache) GetResourcesForService(ctx context.Context, serviceID int64) ([]domain.Resource, error) {
	key := resourcesKey(serviceID)

	var cached []domain.Resource
	if c.load(ctx, key, &cached) {
		return cached, nil
	}

	resources, err := c.source.GetResourcesForService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	c.save(ctx, key, resources)
	return resources, nil
}

// Invalidate удаляет услугу и её ресурсы из кэша
func (c *Cache) Invalidate(ctx context.Context, serviceID int64) error {
	if err := c.store.Del(ctx, serviceKey(serviceID), resourcesKey(serviceID)); err != nil {
		return fmt.Errorf("catalog.cache: invalidate service=%d: %w", serviceID, err)
	}
	return nil
}

func (c *Cache) load(ctx context.Context, key string, dst interface{}) bool {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, errMiss) {
			c.logger.Warn("catalog cache: get %s failed: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		c.logger.Warn("catalog cache: corrupted entry %s: %v", key, err)
		return false
	}
	return true
}

func (c *Cache) save(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("catalog cache: marshal %s failed: %v", key, err)
		return
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("catalog cache: set %s failed: %v", key, err)
	}
}

func serviceKey(id int64) string {
	return fmt.Sprintf("%s:service:%d", keyPrefix, id)
}

func resourcesKey(serviceID int64) string {
	return fmt.Sprintf("%s:resources:%d", keyPrefix, serviceID)
}

// RedisStore Store поверх go-redis
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore создает Store поверх клиента Redis
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errMiss
	}
	return data, err
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Del(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// NewRedisClient подключается к Redis и проверяет соединение
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("catalog.cache: ping redis %s: %w", addr, err)
	}

	return client, nil
}
