// Package cardstore keeps the card list of one language in step with its
// persisted slot. The collection operations are pure functions; Store only
// moves collections in and out of storage.
package cardstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/kpauljoseph/lingocards/internal/language"
	"github.com/kpauljoseph/lingocards/internal/storage"
	"github.com/kpauljoseph/lingocards/pkg/logger"
	"github.com/kpauljoseph/lingocards/pkg/models"
)

type Store struct {
	slots     storage.SlotStore
	namespace storage.Namespace
	legacy    storage.Namespace
	logger    *logger.Logger
}

type Option func(*Store)

func WithNamespace(ns storage.Namespace) Option {
	return func(s *Store) {
		s.namespace = ns
	}
}

func WithLegacyNamespace(ns storage.Namespace) Option {
	return func(s *Store) {
		s.legacy = ns
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(s *Store) {
		s.logger = log
	}
}

func New(slots storage.SlotStore, options ...Option) (*Store, error) {
	if slots == nil {
		return nil, errors.New("cardstore: slot store is required")
	}

	s := &Store{
		slots:     slots,
		namespace: storage.DefaultNamespace(),
		legacy:    storage.LegacyNamespace(),
		logger:    logger.Discard(),
	}
	for _, opt := range options {
		opt(s)
	}

	if err := s.namespace.Validate(); err != nil {
		return nil, err
	}
	if s.namespace.Prefix == s.legacy.Prefix {
		return nil, fmt.Errorf("cardstore: namespace and legacy namespace share prefix %q", s.namespace.Prefix)
	}
	return s, nil
}

// Key is the slot key for lang.
func (s *Store) Key(lang language.Code) string {
	return s.namespace.Key(lang)
}

// Fetch reads the saved collection for lang without any fallback.
func (s *Store) Fetch(ctx context.Context, lang language.Code) (models.Collection, error) {
	key := s.namespace.Key(lang)

	data, found, err := s.slots.Get(ctx, key)
	if err != nil {
		return nil, &ReadError{Lang: lang, Key: key, Failure: ReadUnavailable, Err: err}
	}
	if !found {
		return nil, &ReadError{Lang: lang, Key: key, Failure: ReadMissing, Err: ErrSlotMissing}
	}

	cards, err := Decode(data)
	if err != nil {
		return nil, &ReadError{Lang: lang, Key: key, Failure: ReadInvalid, Err: err}
	}
	s.logger.Trace("Fetched %d cards from %s", len(cards), key)
	return cards, nil
}

// Load returns the saved collection for lang, or the built-in samples when
// the slot is missing, unreadable or fails validation. It never fails.
func (s *Store) Load(ctx context.Context, lang language.Code) models.Collection {
	cards, err := s.Fetch(ctx, lang)
	if err == nil {
		s.logger.Debug("Loaded %d saved cards for %s", len(cards), lang)
		return cards
	}

	var readErr *ReadError
	if errors.As(err, &readErr) && readErr.Failure == ReadMissing {
		s.logger.Debug("No saved cards for %s, using samples", lang)
	} else {
		s.logger.Warn("Falling back to sample cards for %s: %v", lang, err)
	}
	return Samples(lang)
}

// Persist writes c to the slot for lang.
func (s *Store) Persist(ctx context.Context, lang language.Code, c models.Collection) error {
	key := s.namespace.Key(lang)

	data, err := Encode(c)
	if err != nil {
		return &WriteError{Lang: lang, Key: key, Err: err}
	}
	if err := s.slots.Set(ctx, key, data); err != nil {
		return &WriteError{Lang: lang, Key: key, Err: err}
	}
	s.logger.Trace("Saved %d cards to %s", len(c), key)
	return nil
}

// Save is Persist with the error logged and dropped. It reports whether the
// write landed so callers can remember unsaved state.
func (s *Store) Save(ctx context.Context, lang language.Code, c models.Collection) bool {
	if err := s.Persist(ctx, lang, c); err != nil {
		s.logger.Warn("Could not save cards for %s, keeping them in memory: %v", lang, err)
		return false
	}
	return true
}

// Forget deletes the saved slot for lang so the next Load returns samples.
func (s *Store) Forget(ctx context.Context, lang language.Code) error {
	key := s.namespace.Key(lang)
	if err := s.slots.Delete(ctx, key); err != nil {
		return &WriteError{Lang: lang, Key: key, Err: err}
	}
	return nil
}
