package tokenslot

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/teamsync/internal/config"
)

// Redis хранит токен под ключом <prefix>token.
type Redis struct {
	Db  *redis.Client
	key string
}

// NewRedis подключается к redis и проверяет соединение.
func NewRedis(ctx context.Context, cfg config.Redis) (*Redis, error) {
	const op = "tokenslot.NewRedis"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Redis{Db: db, key: cfg.KeyPrefix + Key}, nil
}

// Load читает токен; отсутствие ключа означает пустой токен.
func (r *Redis) Load(ctx context.Context) (string, error) {
	const op = "tokenslot.Redis.Load"
	val, err := r.Db.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return val, nil
}

// Save записывает токен без срока истечения.
func (r *Redis) Save(ctx context.Context, token string) error {
	const op = "tokenslot.Redis.Save"
	if err := r.Db.Set(ctx, r.key, token, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Clear удаляет ключ токена.
func (r *Redis) Clear(ctx context.Context) error {
	const op = "tokenslot.Redis.Clear"
	if err := r.Db.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает соединение с redis.
func (r *Redis) Close() error {
	return r.Db.Close()
}
