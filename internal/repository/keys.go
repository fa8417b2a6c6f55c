package repository

import "time"

// Key namespaces, one per entity: summary:{entity}:{id}.
const (
	urlKeyPrefix   = "summary:url:"   // canonical URL -> fingerprint
	cacheKeyPrefix = "summary:cache:" // fingerprint -> CacheEntry
	lockKeyPrefix  = "summary:lock:"  // fingerprint -> opaque marker
	jobKeyPrefix   = "summary:job:"   // provider job id -> Correlation
)

// Protocol TTLs. These are constants rather than configuration: instances
// sharing one store must agree on them or the dedup invariants skew.
const (
	// CacheTTL bounds how long a finished summary and its URL aliases are
	// served before the content is re-summarized.
	CacheTTL = 7 * 24 * time.Hour

	// LockTTL bounds how long a crashed or hung lock holder can wedge a
	// fingerprint. Normal release is explicit; this is the backstop.
	LockTTL = 60 * time.Second

	// CorrelationTTL bounds how long a lost or duplicate callback can still
	// be honored. Deliberately longer than LockTTL so a slow provider's
	// callback lands even after the lock has lapsed.
	CorrelationTTL = time.Hour
)

func urlKey(canonicalURL string) string { return urlKeyPrefix + canonicalURL }

func cacheKey(fingerprint string) string { return cacheKeyPrefix + fingerprint }

func lockKey(fingerprint string) string { return lockKeyPrefix + fingerprint }

func jobKey(jobID string) string { return jobKeyPrefix + jobID }
