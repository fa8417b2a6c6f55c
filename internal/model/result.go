package model

// Status is the caller-observable state of a summary request.
type Status string

const (
	StatusComplete   Status = "complete"   // cached result available
	StatusProcessing Status = "processing" // this call triggered generation
	StatusPending    Status = "pending"    // another caller triggered generation
	StatusUnknown    Status = "unknown"    // nothing cached, nothing in flight
)

// GenerateResult is the tagged outcome of a generate request. Exactly one of
// the three non-error states is set; validation and internal failures travel
// as errors, not states.
type GenerateResult struct {
	Status      Status
	Fingerprint string

	// Populated when Status == StatusComplete.
	Entry *CacheEntry

	// Populated when Status == StatusProcessing.
	JobID string
}

// FetchResult is the tagged outcome of a read-only fetch query.
type FetchResult struct {
	Status      Status
	Fingerprint string

	// Populated when Status == StatusComplete.
	Entry *CacheEntry
}
