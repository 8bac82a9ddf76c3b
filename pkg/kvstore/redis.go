package kvstore

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"
)

// RedisStore persists blobs in Redis. Values carry no TTL: the unlock and
// interaction snapshots live for as long as the user does.
type RedisStore struct {
	client *goredis.Client
	// Prefix namespaces keys so multiple stores can share one Redis DB.
	prefix string
}

func NewRedisStore(client *goredis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return val, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
