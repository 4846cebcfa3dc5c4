package cardstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kpauljoseph/lingocards/internal/language"
	"github.com/kpauljoseph/lingocards/pkg/models"
)

// legacyCard is the shape the first browser release stored: the English
// term under "en" and the translation under "target".
type legacyCard struct {
	En     *string `json:"en"`
	Target *string `json:"target"`
}

func decodeLegacy(data []byte) (models.Collection, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var raw []*legacyCard
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: top level must be an array", ErrSchema)
	}

	out := make(models.Collection, 0, len(raw))
	for i, w := range raw {
		if w == nil || w.En == nil || w.Target == nil {
			return nil, fmt.Errorf("%w: legacy card %d lacks en or target", ErrSchema, i)
		}
		card := models.Card{Front: *w.En, Back: *w.Target}
		// the legacy app never re-validated what it stored
		if card.Blank() {
			continue
		}
		out = append(out, card)
	}
	return out, nil
}

// Migrate copies cards saved by the first browser release into the current
// namespace. It only runs when lang has no current slot and a valid legacy
// slot exists, and reports whether anything was copied. The legacy slot is
// left in place.
func (s *Store) Migrate(ctx context.Context, lang language.Code) (bool, error) {
	_, err := s.Fetch(ctx, lang)
	if err == nil {
		return false, nil
	}
	var readErr *ReadError
	if !errors.As(err, &readErr) || readErr.Failure != ReadMissing {
		return false, fmt.Errorf("migrate %s: current slot is not absent: %w", lang, err)
	}

	legacyKey := s.legacy.Key(lang)
	data, found, err := s.slots.Get(ctx, legacyKey)
	if err != nil {
		return false, &ReadError{Lang: lang, Key: legacyKey, Failure: ReadUnavailable, Err: err}
	}
	if !found {
		return false, nil
	}

	cards, err := decodeLegacy(data)
	if err != nil {
		return false, &ReadError{Lang: lang, Key: legacyKey, Failure: ReadInvalid, Err: err}
	}
	if err := s.Persist(ctx, lang, cards); err != nil {
		return false, err
	}

	s.logger.Info("Migrated %d cards for %s from %s", len(cards), lang, legacyKey)
	return true, nil
}
