package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/wms-api/internal/application/ports"
	"github.com/jhoicas/wms-api/pkg/config"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "wms:replay:"
	pendingMarker    = "pending"
)

// RedisResultStore implementa ports.ResponseStore sobre Redis, compartido entre instancias.
type RedisResultStore struct {
	client    *redis.Client
	keyPrefix string
}

var _ ports.ResponseStore = (*RedisResultStore)(nil)

// NewRedisResultStore conecta con Redis y verifica la conexión.
func NewRedisResultStore(ctx context.Context, cfg config.RedisConfig) (*RedisResultStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}
	return NewRedisResultStoreWithClient(client, ""), nil
}

// NewRedisResultStoreWithClient usa un cliente existente.
func NewRedisResultStoreWithClient(client *redis.Client, keyPrefix string) *RedisResultStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisResultStore{client: client, keyPrefix: keyPrefix}
}

// Reserve usa SETNX: atómico entre instancias.
func (s *RedisResultStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.keyPrefix+key, pendingMarker, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reservar clave: %w", err)
	}
	return ok, nil
}

// Save guarda la respuesta serializada en JSON.
func (s *RedisResultStore) Save(ctx context.Context, key string, resp ports.StoredResponse, ttl time.Duration) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("serializar respuesta: %w", err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("guardar respuesta: %w", err)
	}
	return nil
}

// Get lee la respuesta guardada.
func (s *RedisResultStore) Get(ctx context.Context, key string) (*ports.StoredResponse, bool, error) {
	raw, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("leer respuesta: %w", err)
	}
	if raw == pendingMarker {
		return nil, true, nil
	}
	var resp ports.StoredResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, false, fmt.Errorf("decodificar respuesta: %w", err)
	}
	return &resp, false, nil
}

// Release borra la clave.
func (s *RedisResultStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("liberar clave: %w", err)
	}
	return nil
}

// Close cierra el cliente de Redis.
func (s *RedisResultStore) Close() error {
	return s.client.Close()
}
