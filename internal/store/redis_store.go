package store

import (
	"context"
	"fmt"
	"scad/internal/providers"
	"scad/internal/structures"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cast"
)

const scanBatchSize = 512

// RedisStore implements KeyedStore on Redis. Every leaf path is a flat
// Redis key, so subtree reads fold a SCAN over the path prefix back into
// nested maps. Increment maps to INCRBY, which serializes concurrent
// increments server-side; counters stay monotonic even when two events for
// the same path are in flight at once.
type RedisStore struct {
	client  *redis.Client
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewRedisStore(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (KeyedStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         conf.Store.Addr,
		Password:     conf.Store.Password,
		DB:           conf.Store.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Infof(providers.TypeStore, "Connected to store at %s", conf.Store.Addr)

	return &RedisStore{
		client:  client,
		logger:  logger,
		metrics: metrics,
	}, nil
}

func (s *RedisStore) Get(ctx context.Context, path string) (any, error) {
	val, err := s.client.Get(ctx, path).Result()
	if err == nil {
		s.metrics.IncStoreOps("get", true)
		return val, nil
	}
	if err != redis.Nil {
		s.metrics.IncStoreOps("get", false)
		return nil, fmt.Errorf("store get %s: %w", path, err)
	}

	tree, err := s.getSubtree(ctx, path)
	if err != nil {
		s.metrics.IncStoreOps("get", false)
		return nil, err
	}
	s.metrics.IncStoreOps("get", true)
	if len(tree) == 0 {
		return nil, nil
	}
	return tree, nil
}

func (s *RedisStore) getSubtree(ctx context.Context, path string) (map[string]any, error) {
	prefix := path + "/"
	var keys []string
	iter := s.client.Scan(ctx, 0, prefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("store scan %s: %w", path, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	tree := make(map[string]any)
	for start := 0; start < len(keys); start += scanBatchSize {
		end := min(start+scanBatchSize, len(keys))
		batch := keys[start:end]
		vals, err := s.client.MGet(ctx, batch...).Result()
		if err != nil {
			return nil, fmt.Errorf("store mget %s: %w", path, err)
		}
		for i, key := range batch {
			if vals[i] == nil {
				continue
			}
			foldInto(tree, strings.Split(strings.TrimPrefix(key, prefix), "/"), cast.ToString(vals[i]))
		}
	}
	return tree, nil
}

// foldInto inserts a leaf value under the given path segments, creating
// intermediate maps as needed. A leaf colliding with an existing branch is
// dropped rather than clobbering the branch.
func foldInto(tree map[string]any, segments []string, value string) {
	for i, seg := range segments {
		if i == len(segments)-1 {
			if _, isBranch := tree[seg].(map[string]any); !isBranch {
				tree[seg] = value
			}
			return
		}
		next, ok := tree[seg].(map[string]any)
		if !ok {
			next = make(map[string]any)
			tree[seg] = next
		}
		tree = next
	}
}

func (s *RedisStore) Set(ctx context.Context, path string, value any) error {
	err := s.client.Set(ctx, path, cast.ToString(value), 0).Err()
	s.metrics.IncStoreOps("set", err == nil)
	if err != nil {
		return fmt.Errorf("store set %s: %w", path, err)
	}
	return nil
}

func (s *RedisStore) Update(ctx context.Context, path string, fields map[string]any) error {
	pipe := s.client.Pipeline()
	for field, value := range fields {
		pipe.Set(ctx, path+"/"+field, cast.ToString(value), 0)
	}
	_, err := pipe.Exec(ctx)
	s.metrics.IncStoreOps("update", err == nil)
	if err != nil {
		return fmt.Errorf("store update %s: %w", path, err)
	}
	return nil
}

func (s *RedisStore) Increment(ctx context.Context, path string, amount int64) (int64, error) {
	val, err := s.client.IncrBy(ctx, path, amount).Result()
	s.metrics.IncStoreOps("increment", err == nil)
	if err != nil {
		return 0, fmt.Errorf("store increment %s: %w", path, err)
	}
	return val, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
