// Package valkey stores slots in Valkey using the official client.
package valkey

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/kpauljoseph/lingocards/internal/storage"
)

type Store struct {
	client valkey.Client

	mu     sync.RWMutex
	closed bool
}

var _ storage.SlotStore = (*Store)(nil)

const connectionTimeout = 5 * time.Second

// New connects using a redis:// or valkey:// style URL and pings the server.
func New(ctx context.Context, rawURL string) (*Store, error) {
	if rawURL == "" {
		return nil, errors.New("valkey storage: url is required")
	}

	opts, err := valkey.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()

	if pingErr := client.Do(pingCtx, client.B().Ping().Build()).Error(); pingErr != nil {
		client.Close()
		return nil, pingErr
	}

	return &Store{client: client}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, storage.ErrClosed
	}
	resp := s.client.Do(ctx, s.client.B().Get().Key(key).Build())
	if err := resp.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	val, err := resp.AsBytes()
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return storage.ErrClosed
	}
	cmd := s.client.B().Set().Key(key).Value(valkey.BinaryString(value)).Build()
	return s.client.Do(ctx, cmd).Error()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return storage.ErrClosed
	}
	return s.client.Do(ctx, s.client.B().Del().Key(key).Build()).Error()
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		s.client.Close()
	}
	return nil
}
