package models

import "strings"

// Card is one study pair: the English term on the front and the
// target-language term on the back.
type Card struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Blank reports whether either side is empty once surrounding whitespace
// is ignored.
func (c Card) Blank() bool {
	return strings.TrimSpace(c.Front) == "" || strings.TrimSpace(c.Back) == ""
}

// Collection is an ordered list of cards. Order is display order.
type Collection []Card

func (c Collection) Len() int {
	return len(c)
}

// Clone returns an independent copy. A nil collection clones to an empty,
// non-nil one.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// Equal compares two collections element by element.
func (c Collection) Equal(other Collection) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}
