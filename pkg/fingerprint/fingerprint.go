// Package fingerprint derives the content identity used for caching and
// deduplication: a SHA-256 over the canonical URL, the headline, and the
// leading article text.
package fingerprint

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strings"
)

// TextPrefixLen bounds how much article text participates in the identity.
// Trailing differences across mirrors of the same article must not fragment
// the cache, so only the leading text is hashed.
const TextPrefixLen = 300

// Compute returns a 64-character hex digest identifying the article content.
// Identical (canonicalURL, title, first 300 characters of text) triples
// always produce identical digests.
func Compute(canonicalURL, title, text string) string {
	title = strings.TrimSpace(title)
	text = truncateRunes(strings.TrimSpace(text), TextPrefixLen)

	// Length-prefix each field so no two distinct triples serialize to the
	// same byte sequence.
	h := sha256.New()
	for _, field := range []string{canonicalURL, title, text} {
		var n [4]byte
		binary.BigEndian.PutUint32(n[:], uint32(len(field)))
		h.Write(n[:])
		h.Write([]byte(field))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
