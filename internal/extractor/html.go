package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Elements that never carry article prose.
const boilerplateSelector = "script, style, noscript, nav, header, footer, aside, form, iframe"

type htmlExtractor struct {
	logger *zap.Logger
}

func NewHTMLExtractor(logger *zap.Logger) Extractor {
	return &htmlExtractor{logger: logger}
}

func (e *htmlExtractor) Extract(rawHTML, pageURL, fallbackSnippet string) string {
	fallbackSnippet = strings.TrimSpace(fallbackSnippet)

	rawHTML = strings.TrimSpace(rawHTML)
	if rawHTML == "" {
		return fallbackSnippet
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		e.logger.Warn("failed to parse article html, using snippet",
			zap.String("url", pageURL), zap.Error(err))
		return fallbackSnippet
	}

	doc.Find(boilerplateSelector).Remove()

	text := articleText(doc)

	// A snippet longer than what we extracted means extraction hit a paywall
	// teaser, a cookie wall, or boilerplate; the caller's snippet is the
	// better signal then.
	if len(text) < len(fallbackSnippet) {
		return fallbackSnippet
	}
	return text
}

// articleText prefers the first <article> element, then the page's
// paragraphs, then the whole body text.
func articleText(doc *goquery.Document) string {
	if article := doc.Find("article").First(); article.Length() > 0 {
		if text := collapseWhitespace(article.Text()); text != "" {
			return text
		}
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := collapseWhitespace(sel.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) > 0 {
		return strings.Join(paragraphs, "\n")
	}

	return collapseWhitespace(doc.Find("body").Text())
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
