// cache — expiring key-value store поверх Redis.
//
// Используется брокером внешнего логина для короткоживущих state/PKCE-записей:
// атомарные set с TTL, get и delete; никакая транзакция не связывает этот
// store c долговременной БД.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// StateStore — минимальный контракт expiring-store.
type StateStore interface {
	// Set сохраняет значение с TTL.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Get возвращает значение и признак его наличия.
	Get(ctx context.Context, key string) (string, bool, error)
	// Delete удаляет ключи (отсутствующие игнорируются).
	Delete(ctx context.Context, keys ...string) error
	// Close закрывает клиент.
	Close() error
}

type redisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "auth:".
func NewRedisStore(redisURL, prefix string) (StateStore, error) {
	if prefix == "" {
		prefix = "auth:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &redisStore{rdb: rdb, prefix: prefix}, nil
}

func (s *redisStore) key(k string) string { return s.prefix + k }

func (s *redisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, s.key(key), value, ttl).Err()
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}

		return "", false, err
	}

	return val, true, nil
}

func (s *redisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, 0, len(keys))
	for _, k := range keys {
		prefixed = append(prefixed, s.key(k))
	}

	return s.rdb.Del(ctx, prefixed...).Err()
}

func (s *redisStore) Close() error { return s.rdb.Close() }
