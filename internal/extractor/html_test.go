package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const articleHTML = `<html><head><script>var x = 1;</script><style>p{}</style></head>
<body>
<nav>Home | News</nav>
<article><p>First paragraph of the story.</p><p>Second paragraph with details.</p></article>
<footer>Copyright</footer>
</body></html>`

func TestExtractPrefersArticleElement(t *testing.T) {
	e := NewHTMLExtractor(zap.NewNop())

	text := e.Extract(articleHTML, "https://example.com/a", "")
	assert.Contains(t, text, "First paragraph of the story.")
	assert.Contains(t, text, "Second paragraph with details.")
	assert.NotContains(t, text, "var x = 1")
	assert.NotContains(t, text, "Home | News")
	assert.NotContains(t, text, "Copyright")
}

func TestExtractParagraphsWithoutArticle(t *testing.T) {
	e := NewHTMLExtractor(zap.NewNop())

	html := `<html><body><p>Alpha.</p><div><p>Beta.</p></div></body></html>`
	text := e.Extract(html, "https://example.com/a", "")
	assert.Equal(t, "Alpha.\nBeta.", text)
}

func TestExtractEmptyHTMLFallsBackToSnippet(t *testing.T) {
	e := NewHTMLExtractor(zap.NewNop())

	assert.Equal(t, "the snippet", e.Extract("", "https://example.com/a", " the snippet "))
	assert.Equal(t, "", e.Extract("", "https://example.com/a", ""))
}

func TestExtractShortExtractionFallsBackToSnippet(t *testing.T) {
	e := NewHTMLExtractor(zap.NewNop())

	// A cookie-wall page yields less text than the caller's snippet; the
	// snippet is the better signal then.
	html := `<html><body><p>Accept cookies</p></body></html>`
	snippet := strings.Repeat("real article text ", 10)
	assert.Equal(t, strings.TrimSpace(snippet), e.Extract(html, "https://example.com/a", snippet))
}

func TestExtractCollapsesWhitespace(t *testing.T) {
	e := NewHTMLExtractor(zap.NewNop())

	html := "<html><body><p>spread\n\tacross   lines</p></body></html>"
	assert.Equal(t, "spread across lines", e.Extract(html, "https://example.com/a", ""))
}
