package anki

import (
	"strings"

	"github.com/kpauljoseph/lingocards/internal/language"
)

const (
	ANKI_CONNECT_VERSION = 6
)

// DeckName builds the Anki deck for a language, nested under rootPrefix
// when one is given, e.g. "Lingocards::Español".
func DeckName(rootPrefix string, code language.Code) string {
	var parts []string

	if root := strings.TrimSpace(rootPrefix); root != "" {
		parts = append(parts, root)
	}
	parts = append(parts, code.DisplayName())

	// Join with Anki's separator
	return strings.Join(parts, "::")
}

func deckTag(deckName string) string {
	tag := strings.ReplaceAll(strings.TrimSpace(deckName), "::", "_")
	return strings.ReplaceAll(tag, " ", "_")
}
