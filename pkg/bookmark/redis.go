package bookmark

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "puzzled:bookmark:"
	redisIndexKey  = "puzzled:bookmarks"
)

// RedisStore keeps bookmarks in Redis, one JSON value per entry plus a set
// of IDs for listing. Entries have no TTL; bookmarks are kept until deleted.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis at addr and verifies the connection.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Entry, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bookmark: %w", err)
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("parse bookmark: %w", err)
	}
	return &e, nil
}

func (s *RedisStore) Put(ctx context.Context, e *Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal bookmark: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+e.ID, data, 0).Err(); err != nil {
		return fmt.Errorf("set bookmark: %w", err)
	}
	if err := s.client.SAdd(ctx, redisIndexKey, e.ID).Err(); err != nil {
		return fmt.Errorf("index bookmark: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	if err := s.client.SRem(ctx, redisIndexKey, id).Err(); err != nil {
		return fmt.Errorf("unindex bookmark: %w", err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]Entry, error) {
	ids, err := s.client.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	var out []Entry
	for _, id := range ids {
		e, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if e != nil {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
