// Package deckfile reads and writes card collections as standalone JSON
// files, in the same schema used for the persisted slots.
package deckfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kpauljoseph/lingocards/internal/cardstore"
	"github.com/kpauljoseph/lingocards/pkg/models"
)

func Read(path string) (models.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck %s: %w", path, err)
	}
	cards, err := cardstore.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("deck %s: %w", path, err)
	}
	return cards, nil
}

// Write replaces path with the encoded collection via a temp file in the
// same directory.
func Write(path string, c models.Collection) error {
	data, err := cardstore.Encode(c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".deck-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write deck %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close deck %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace deck %s: %w", path, err)
	}
	return nil
}

// Merge appends every valid card of incoming to c, skipping cards already
// present with identical text. It returns the result and how many cards
// were added.
func Merge(c, incoming models.Collection) (models.Collection, int) {
	seen := make(map[models.Card]bool, len(c))
	for _, card := range c {
		seen[card] = true
	}

	out := c
	added := 0
	for _, card := range incoming {
		if seen[card] {
			continue
		}
		next := cardstore.Add(out, card.Front, card.Back)
		if len(next) == len(out) {
			continue
		}
		out = next
		seen[card] = true
		added++
	}
	return out, added
}
