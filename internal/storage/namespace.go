package storage

import (
	"fmt"
	"strings"

	"github.com/kpauljoseph/lingocards/internal/language"
)

const (
	DefaultPrefix = "flashcards"
	// LegacyPrefix is the slot prefix written by the first browser release.
	LegacyPrefix = "cards"

	separator = "_"
)

// Namespace maps a language code to its slot key: <prefix>_<code>.
type Namespace struct {
	Prefix string
}

func DefaultNamespace() Namespace {
	return Namespace{Prefix: DefaultPrefix}
}

func LegacyNamespace() Namespace {
	return Namespace{Prefix: LegacyPrefix}
}

func (n Namespace) Key(code language.Code) string {
	prefix := n.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + separator + string(code)
}

// Code recovers the language code from a key in this namespace.
func (n Namespace) Code(key string) (language.Code, error) {
	prefix := n.Key("")
	if !strings.HasPrefix(key, prefix) {
		return "", fmt.Errorf("storage: key %q is outside namespace %q", key, n.Prefix)
	}
	return language.Parse(strings.TrimPrefix(key, prefix))
}

// Validate rejects prefixes that would make keys ambiguous.
func (n Namespace) Validate() error {
	if strings.Contains(n.Prefix, separator) {
		return fmt.Errorf("storage: namespace prefix %q must not contain %q", n.Prefix, separator)
	}
	if strings.ContainsAny(n.Prefix, "/\\ \t\n") {
		return fmt.Errorf("storage: namespace prefix %q contains path or space characters", n.Prefix)
	}
	return nil
}
