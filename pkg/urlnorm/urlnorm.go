// Package urlnorm canonicalizes article URLs so that the many variants a
// link travels under (tracking parameters, mobile subdomains, fragments)
// collapse to one stable cache key.
package urlnorm

import (
	"net/url"
	"strings"
)

// Query parameters that never change which article a URL points at.
var trackingParams = map[string]bool{
	"fbclid":   true,
	"gclid":    true,
	"yclid":    true,
	"msclkid":  true,
	"twclid":   true,
	"igshid":   true,
	"mc_cid":   true,
	"mc_eid":   true,
	"ref":      true,
	"source":   true,
	"campaign": true,
}

// Normalize returns the canonical form of a raw article URL. Normalization
// is best-effort: a URL that cannot be parsed is returned unchanged and the
// residual divergence is absorbed by content fingerprinting downstream.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}

	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return raw
	}

	u.Host = normalizeHost(strings.ToLower(u.Host))
	u.Path = normalizePath(u.Path)
	u.Fragment = ""
	u.RawFragment = ""

	if u.RawQuery != "" {
		q := u.Query()
		for name := range q {
			if trackingParams[name] || strings.HasPrefix(name, "utm_") {
				q.Del(name)
			}
		}
		u.RawQuery = q.Encode()
	}

	return u.String()
}

// normalizeHost collapses mobile host conventions to the desktop host:
// "m.example.com" -> "example.com", "en.m.wikipedia.org" -> "en.wikipedia.org".
func normalizeHost(host string) string {
	if after, ok := strings.CutPrefix(host, "m."); ok && strings.Contains(after, ".") {
		return after
	}
	if before, after, ok := strings.Cut(host, ".m."); ok && before != "" && strings.Contains(after, ".") {
		return before + "." + after
	}
	return host
}

// normalizePath drops a leading mobile path segment and a single trailing
// slash on non-root paths.
func normalizePath(path string) string {
	for _, prefix := range []string{"/mobile/", "/m/"} {
		if rest, ok := strings.CutPrefix(path, prefix); ok {
			path = "/" + rest
			break
		}
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
