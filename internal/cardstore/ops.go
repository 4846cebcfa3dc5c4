package cardstore

import (
	"strings"

	"github.com/kpauljoseph/lingocards/pkg/models"
)

// Validate checks new card text. Both sides must be non-empty after trimming.
func Validate(front, back string) error {
	if strings.TrimSpace(front) == "" {
		return &ValidationError{Err: ErrEmptyFront}
	}
	if strings.TrimSpace(back) == "" {
		return &ValidationError{Err: ErrEmptyBack}
	}
	return nil
}

// Add returns c with {front, back} appended. Invalid text leaves c as is.
// The input is never modified.
func Add(c models.Collection, front, back string) models.Collection {
	if Validate(front, back) != nil {
		return c
	}
	out := make(models.Collection, len(c), len(c)+1)
	copy(out, c)
	return append(out, models.Card{Front: front, Back: back})
}

// Remove returns c without the card at index. Out of range leaves c as is.
func Remove(c models.Collection, index int) models.Collection {
	if index < 0 || index >= len(c) {
		return c
	}
	out := make(models.Collection, 0, len(c)-1)
	out = append(out, c[:index]...)
	return append(out, c[index+1:]...)
}

// Replace returns c with the card at index rewritten. Invalid text or an
// out-of-range index leaves c as is.
func Replace(c models.Collection, index int, front, back string) models.Collection {
	if index < 0 || index >= len(c) || Validate(front, back) != nil {
		return c
	}
	out := c.Clone()
	out[index] = models.Card{Front: front, Back: back}
	return out
}

// Clear returns an empty collection.
func Clear(models.Collection) models.Collection {
	return models.Collection{}
}
