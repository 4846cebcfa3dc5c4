package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// CardHash identifies a card's content within one language. Surrounding
// whitespace does not change the hash.
func CardHash(lang, front, back string) string {
	hasher := sha256.New()
	for _, part := range []string{lang, strings.TrimSpace(front), strings.TrimSpace(back)} {
		hasher.Write([]byte(part))
		hasher.Write([]byte{0})
	}
	return hex.EncodeToString(hasher.Sum(nil))
}
