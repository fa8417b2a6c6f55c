// Package extractor turns raw article HTML into plain text suitable for
// summarization. Extraction is strictly best-effort: malformed or empty HTML
// falls back to the caller-supplied snippet, never to an error.
package extractor

// Extractor resolves the article text for a page.
type Extractor interface {
	// Extract returns the article text for rawHTML, falling back to
	// fallbackSnippet when extraction is unavailable or yields materially
	// less text than the snippet. The result may be empty when neither
	// source has usable text.
	Extract(rawHTML, pageURL, fallbackSnippet string) string
}
