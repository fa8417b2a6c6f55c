package model

// CacheEntry is the finished, reusable result for one content fingerprint.
// It is created exactly once per fingerprint and never overwritten; updated
// content produces a new fingerprint and therefore a new entry.
type CacheEntry struct {
	Summary     string `json:"summary"`
	Headline    string `json:"headline"`
	Provider    string `json:"provider"`
	CompletedAt int64  `json:"completed_at"` // epoch millis
}

// Correlation bridges the provider's asynchronous callback, which carries
// only a job id, back to the request that spawned it.
type Correlation struct {
	Fingerprint string `json:"fingerprint"`
	Headline    string `json:"headline"`
	URL         string `json:"url,omitempty"`      // normalized; may be empty
	Provider    string `json:"provider,omitempty"` // tag for the finished entry
}
