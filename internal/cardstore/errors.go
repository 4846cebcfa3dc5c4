package cardstore

import (
	"errors"
	"fmt"

	"github.com/kpauljoseph/lingocards/internal/language"
)

var (
	ErrEmptyFront = errors.New("front text is empty")
	ErrEmptyBack  = errors.New("back text is empty")

	// ErrSlotMissing marks a language that has never been saved.
	ErrSlotMissing = errors.New("no saved cards")
)

// ReadFailure says why a slot could not be turned into a collection.
type ReadFailure int

const (
	ReadMissing ReadFailure = iota
	ReadUnavailable
	ReadInvalid
)

func (f ReadFailure) String() string {
	switch f {
	case ReadMissing:
		return "missing"
	case ReadUnavailable:
		return "unreadable"
	case ReadInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// ReadError is returned by Fetch. Load turns every ReadError into the
// sample fallback.
type ReadError struct {
	Lang    language.Code
	Key     string
	Failure ReadFailure
	Err     error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read slot %s (%s): %s: %v", e.Key, e.Lang, e.Failure, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// WriteError is returned by Persist. Save logs it and carries on.
type WriteError struct {
	Lang language.Code
	Key  string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write slot %s (%s): %v", e.Key, e.Lang, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// ValidationError rejects card text before it reaches a collection.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "invalid card: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
