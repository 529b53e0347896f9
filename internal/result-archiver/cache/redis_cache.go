package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/roulette-rooms-poc/pkg/roulette"
)

// RedisCache guarda o último resultado resolvido por room
// Client: cliente Redis
// TTL: tempo de expiração dos registros
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisCache cria uma instância de cache Redis com TTL configurável
func NewRedisCache(c *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: c, TTL: ttl}
}

// key gera a chave Redis do último resultado de um room
func key(roomID string) string { return "spin:latest:" + roomID }

// SetLatest armazena o resultado mais recente de um room com TTL definido
func (r *RedisCache) SetLatest(ctx context.Context, roomID string, res roulette.SpinResult) error {
	b, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, key(roomID), b, r.TTL).Err()
}

// GetLatest lê o resultado mais recente de um room, se houver
func (r *RedisCache) GetLatest(ctx context.Context, roomID string) (*roulette.SpinResult, error) {
	b, err := r.Client.Get(ctx, key(roomID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var res roulette.SpinResult
	if err := json.Unmarshal(b, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
