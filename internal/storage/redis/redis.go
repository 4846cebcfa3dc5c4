// Package redis stores slots as plain string keys in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kpauljoseph/lingocards/internal/storage"
)

// Options contains configuration for the Redis store.
type Options struct {
	// Addr is host:port or a redis:// / rediss:// URL.
	Addr string
	// Password and DB override the URL's values when set.
	Password string
	DB       int
}

type Store struct {
	client *redis.Client

	mu     sync.RWMutex
	closed bool
}

var _ storage.SlotStore = (*Store)(nil)

const connectionTimeout = 5 * time.Second

// New connects and pings.
func New(ctx context.Context, opts Options) (*Store, error) {
	clientOpts, err := clientOptions(opts)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(clientOpts)

	pingCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &Store{client: client}, nil
}

func clientOptions(opts Options) (*redis.Options, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis storage: address is required")
	}

	clientOpts := &redis.Options{Addr: opts.Addr}
	if strings.Contains(opts.Addr, "://") {
		parsed, err := redis.ParseURL(opts.Addr)
		if err != nil {
			return nil, fmt.Errorf("redis storage: %w", err)
		}
		clientOpts = parsed
	}

	if opts.Password != "" {
		clientOpts.Password = opts.Password
	}
	if opts.DB != 0 {
		clientOpts.DB = opts.DB
	}
	return clientOpts, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, storage.ErrClosed
	}

	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return val, true, nil
}

// Set stores without expiry; slots live until replaced.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return storage.ErrClosed
	}
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return storage.ErrClosed
	}
	return s.client.Del(ctx, key).Err()
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.client.Close()
}
