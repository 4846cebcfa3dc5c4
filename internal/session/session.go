// Package session owns the mutable state of one study session: the active
// language, its cards and which cards are flipped. Every change goes through
// the pure cardstore operations and is saved immediately.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/kpauljoseph/lingocards/internal/cardstore"
	"github.com/kpauljoseph/lingocards/internal/language"
	"github.com/kpauljoseph/lingocards/pkg/logger"
	"github.com/kpauljoseph/lingocards/pkg/models"
)

var ErrIndexOutOfRange = errors.New("no card at that position")

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, count int) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, count int) bool

func (f ConfirmFunc) Confirm(ctx context.Context, count int) bool {
	return f(ctx, count)
}

// AlwaysConfirm approves everything, for non-interactive callers that took
// consent some other way.
var AlwaysConfirm = ConfirmFunc(func(context.Context, int) bool { return true })

// Store is the subset of cardstore.Store a session needs.
type Store interface {
	Load(ctx context.Context, lang language.Code) models.Collection
	Save(ctx context.Context, lang language.Code, c models.Collection) bool
}

var _ Store = (*cardstore.Store)(nil)

type Session struct {
	store    Store
	selector *language.Selector
	logger   *logger.Logger

	lang    language.Code
	cards   models.Collection
	flipped map[int]bool
	// unsaved is set when the last save for lang failed
	unsaved bool

	unsubscribe func()
}

// New loads the selector's current language and follows its changes until
// Close.
func New(ctx context.Context, store Store, selector *language.Selector, log *logger.Logger) (*Session, error) {
	if store == nil || selector == nil {
		return nil, errors.New("session: store and selector are required")
	}
	if log == nil {
		log = logger.Discard()
	}

	s := &Session{
		store:    store,
		selector: selector,
		logger:   log,
	}
	s.load(ctx, selector.Current())
	s.unsubscribe = selector.Subscribe(s.onLanguageChange)
	return s, nil
}

func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *Session) Language() language.Code {
	return s.lang
}

// Cards returns a copy of the current collection.
func (s *Session) Cards() models.Collection {
	return s.cards.Clone()
}

func (s *Session) Len() int {
	return len(s.cards)
}

// Unsaved reports whether the in-memory cards differ from what was last
// written successfully.
func (s *Session) Unsaved() bool {
	return s.unsaved
}

// Add validates and appends a card. Invalid text returns a
// *cardstore.ValidationError and changes nothing.
func (s *Session) Add(ctx context.Context, front, back string) error {
	if err := cardstore.Validate(front, back); err != nil {
		return err
	}
	s.apply(ctx, cardstore.Add(s.cards, front, back))
	return nil
}

// Remove deletes the card at index (0-based).
func (s *Session) Remove(ctx context.Context, index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.apply(ctx, cardstore.Remove(s.cards, index))
	s.shiftFlips(index)
	return nil
}

// Replace rewrites the card at index (0-based).
func (s *Session) Replace(ctx context.Context, index int, front, back string) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	if err := cardstore.Validate(front, back); err != nil {
		return err
	}
	s.apply(ctx, cardstore.Replace(s.cards, index, front, back))
	return nil
}

// Clear deletes every card once confirm approves. It reports whether the
// cards were cleared.
func (s *Session) Clear(ctx context.Context, confirm Confirmer) bool {
	if confirm == nil || !confirm.Confirm(ctx, len(s.cards)) {
		s.logger.Debug("Clear of %s declined", s.lang)
		return false
	}
	s.apply(ctx, cardstore.Clear(s.cards))
	s.flipped = make(map[int]bool)
	return true
}

// SetLanguage switches the active language through the selector, which
// reloads this session.
func (s *Session) SetLanguage(ctx context.Context, code language.Code) error {
	return s.selector.Set(ctx, code)
}

func (s *Session) ToggleLanguage(ctx context.Context) language.Code {
	return s.selector.Toggle(ctx)
}

// Flip turns the card at index over and returns whether its back now shows.
func (s *Session) Flip(index int) (bool, error) {
	if err := s.checkIndex(index); err != nil {
		return false, err
	}
	s.flipped[index] = !s.flipped[index]
	return s.flipped[index], nil
}

func (s *Session) Flipped(index int) bool {
	return s.flipped[index]
}

func (s *Session) apply(ctx context.Context, next models.Collection) {
	s.cards = next
	s.unsaved = !s.store.Save(ctx, s.lang, s.cards)
}

func (s *Session) load(ctx context.Context, code language.Code) {
	s.lang = code
	s.cards = s.store.Load(ctx, code)
	s.flipped = make(map[int]bool)
	s.unsaved = false
	s.logger.Debug("Session now on %s with %d cards", code, len(s.cards))
}

func (s *Session) onLanguageChange(ctx context.Context, change language.Change) {
	if s.unsaved {
		// one last attempt so the outgoing language's slot converges
		if s.store.Save(ctx, s.lang, s.cards) {
			s.logger.Debug("Flushed unsaved cards for %s", s.lang)
		} else {
			s.logger.Warn("Dropping unsaved cards for %s after failed flush", s.lang)
		}
	}
	s.load(ctx, change.To)
}

func (s *Session) checkIndex(index int) error {
	if index < 0 || index >= len(s.cards) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index+1, len(s.cards))
	}
	return nil
}

// shiftFlips moves flip state down past a removed card so each remaining
// card keeps its own face.
func (s *Session) shiftFlips(removed int) {
	next := make(map[int]bool, len(s.flipped))
	for i, up := range s.flipped {
		switch {
		case i < removed:
			next[i] = up
		case i > removed:
			next[i-1] = up
		}
	}
	s.flipped = next
}
