package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-chat-client/internal/config"
	"github.com/MKhiriev/go-chat-client/internal/logger"
)

type redisCredentialRepository struct {
	client redis.UniversalClient
	prefix string
	logger *logger.Logger
}

// NewConnectRedis opens a redis client and pings it.
func NewConnectRedis(ctx context.Context, cfg config.ClientRedis, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewConnectRedis").Str("address", cfg.Address).Msg("error connecting redis (ping)")
		client.Close()
		return nil, err
	}
	log.Debug().Str("func", "NewConnectRedis").Str("address", cfg.Address).Msg("connected to redis successfully")

	return client, nil
}

// NewRedisCredentialRepository returns a [CredentialRepository] storing each
// credential part under "<prefix>:<key>".
func NewRedisCredentialRepository(client redis.UniversalClient, prefix string, log *logger.Logger) CredentialRepository {
	return &redisCredentialRepository{client: client, prefix: prefix, logger: log}
}

func (r *redisCredentialRepository) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

func (r *redisCredentialRepository) Put(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		r.logger.Err(err).
			Str("func", "redisCredentialRepository.Put").
			Str("key", key).
			Msg("failed to set credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *redisCredentialRepository) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCredentialNotFound
	}
	if err != nil {
		r.logger.Err(err).
			Str("func", "redisCredentialRepository.Get").
			Str("key", key).
			Msg("failed to get credential")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return value, nil
}

func (r *redisCredentialRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, 0, len(keys))
	for _, k := range keys {
		prefixed = append(prefixed, r.key(k))
	}

	if err := r.client.Del(ctx, prefixed...).Err(); err != nil {
		r.logger.Err(err).
			Str("func", "redisCredentialRepository.Delete").
			Strs("keys", keys).
			Msg("failed to delete credentials")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *redisCredentialRepository) Close() error {
	return r.client.Close()
}
