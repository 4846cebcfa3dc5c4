// Package language holds the enumerated set of card languages and the
// selector that tracks which one is active.
package language

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies the target language of a card set.
type Code string

const (
	ES Code = "es"
	ZH Code = "zh"
)

// Default is the language a fresh session starts in.
const Default = ES

var ErrUnsupported = errors.New("unsupported language")

var supported = []Code{ES, ZH}

var displayNames = map[Code]string{
	ES: "Español",
	ZH: "中文",
}

// Supported returns the card languages in toggle order.
func Supported() []Code {
	out := make([]Code, len(supported))
	copy(out, supported)
	return out
}

func (c Code) Valid() bool {
	for _, s := range supported {
		if c == s {
			return true
		}
	}
	return false
}

// DisplayName is the language's own name for itself.
func (c Code) DisplayName() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return string(c)
}

func (c Code) String() string {
	return string(c)
}

// Parse accepts a code in any letter case with surrounding whitespace.
func Parse(s string) (Code, error) {
	code := Code(strings.ToLower(strings.TrimSpace(s)))
	if !code.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupported, s)
	}
	return code, nil
}

// Next returns the language after c in toggle order, wrapping around.
func Next(c Code) Code {
	for i, s := range supported {
		if s == c {
			return supported[(i+1)%len(supported)]
		}
	}
	return supported[0]
}
