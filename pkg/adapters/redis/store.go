// Package redis provides a Redis-backed GraphStore for hosts that share
// one document set between processes.
package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/codec"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
)

// Store implements ports.GraphStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored graphs.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for stored graphs.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "chatflow:graph:",
		ttl:    0, // no expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the graph to Redis and indexes the key in a ZSET.
func (s *Store) Save(ctx context.Context, key string, g domain.Graph) error {
	data, err := codec.MarshalJSON(g)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(key), data, s.ttl)

	// Score = expiry time; effectively-infinite when no TTL is set, so the
	// index can be pruned by score later.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: key})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the graph from Redis.
func (s *Store) Load(ctx context.Context, key string) (domain.Graph, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if err == backend.Nil {
			return domain.Graph{}, domain.ErrGraphNotFound
		}
		return domain.Graph{}, fmt.Errorf("failed to load from redis: %w", err)
	}
	return codec.UnmarshalJSON([]byte(val))
}

// Delete removes the graph and its index entry.
func (s *Store) Delete(ctx context.Context, key string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(key))
	pipe.ZRem(ctx, s.indexKey(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// List returns all indexed graph keys.
func (s *Store) List(ctx context.Context) ([]string, error) {
	keys, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list graphs: %w", err)
	}

	// The index may outlive expired documents; filter against live keys.
	live := make([]string, 0, len(keys))
	for _, k := range keys {
		exists, err := s.client.Exists(ctx, s.key(k)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to check graph key: %w", err)
		}
		if exists > 0 {
			live = append(live, k)
		}
	}
	return live, nil
}
