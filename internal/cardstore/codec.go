package cardstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/kpauljoseph/lingocards/pkg/models"
)

var ErrSchema = errors.New("stored cards do not match schema")

// wireCard uses pointers so a missing key can be told apart from "".
type wireCard struct {
	Front *string `json:"front"`
	Back  *string `json:"back"`
}

// Encode serializes a collection as a JSON array of {front, back} objects.
// A nil collection encodes as []. Cards Decode would reject are refused with
// an error wrapping ErrSchema, so nothing is written that can't be read back.
func Encode(c models.Collection) ([]byte, error) {
	if c == nil {
		c = models.Collection{}
	}
	for i, card := range c {
		if card.Blank() {
			return nil, fmt.Errorf("%w: card %d has blank text", ErrSchema, i)
		}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cards: %w", err)
	}
	return data, nil
}

// Decode parses and validates stored data. Anything that is not an array of
// objects carrying exactly non-blank "front" and "back" strings is rejected
// with an error wrapping ErrSchema.
func Decode(data []byte) (models.Collection, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: top level must be an array", ErrSchema)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	var raw []*wireCard
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after array", ErrSchema)
	}

	out := make(models.Collection, 0, len(raw))
	for i, w := range raw {
		if w == nil {
			return nil, fmt.Errorf("%w: card %d is null", ErrSchema, i)
		}
		if w.Front == nil || w.Back == nil {
			return nil, fmt.Errorf("%w: card %d lacks front or back", ErrSchema, i)
		}
		card := models.Card{Front: *w.Front, Back: *w.Back}
		if card.Blank() {
			return nil, fmt.Errorf("%w: card %d has blank text", ErrSchema, i)
		}
		out = append(out, card)
	}
	return out, nil
}
