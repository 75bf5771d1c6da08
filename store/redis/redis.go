/*
Package redis provides a Redis-backed key-value store.

PURPOSE:
  Implements kv.Store on Redis for deployments where the ledger state
  lives off-device. MultiSet maps to MSET, which Redis applies
  atomically, so the ledger's batch contract holds here too.

SEE ALSO:
  - ledger/kv/kv.go: Interface definition
  - store/sqlite: Local file implementation of the same contract
*/
package redis

import (
	"context"

	"github.com/go-redis/redis"
)

// Store implements kv.Store using a Redis server.
type Store struct {
	client *redis.Client
}

// New connects to the Redis server at addr (host:port) and verifies the
// connection with a ping.
func New(addr string) (*Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping().Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &Store{client: client}, nil
}

// Close releases the client connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

// =============================================================================
// kv.Store IMPLEMENTATION
// =============================================================================

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.WithContext(ctx).Get(key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.client.WithContext(ctx).Set(key, value, 0).Err()
}

func (s *Store) Remove(ctx context.Context, key string) error {
	return s.client.WithContext(ctx).Del(key).Err()
}

func (s *Store) MultiGet(ctx context.Context, keys []string) (map[string]string, error) {
	result := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return result, nil
	}
	values, err := s.client.WithContext(ctx).MGet(keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		if v == nil {
			continue
		}
		if str, ok := v.(string); ok {
			result[keys[i]] = str
		}
	}
	return result, nil
}

func (s *Store) MultiSet(ctx context.Context, pairs map[string]string) error {
	if len(pairs) == 0 {
		return nil
	}
	args := make([]interface{}, 0, len(pairs)*2)
	for k, v := range pairs {
		args = append(args, k, v)
	}
	return s.client.WithContext(ctx).MSet(args...).Err()
}

func (s *Store) MultiRemove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.WithContext(ctx).Del(keys...).Err()
}
