package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"newsroom/summaryhub/internal/model"
)

// SummaryStore is the typed layer over the expiring StateStore for the four
// coordination entities: URL index, cache entry, dedup lock, correlation.
//
// Reads fail open: a transport failure is logged and reported as a miss, so
// the system re-computes rather than serve an error. Writes fail closed:
// a silent write failure would corrupt the dedup or cache invariants, so
// write errors surface to the caller.
type SummaryStore interface {
	// LookupURL resolves a canonical URL to the fingerprint it is currently
	// believed to represent.
	LookupURL(ctx context.Context, canonicalURL string) (string, bool)
	// BindURL records that canonicalURL resolves to fingerprint.
	BindURL(ctx context.Context, canonicalURL, fingerprint string) error

	// GetEntry returns the finished result for a fingerprint, if any.
	GetEntry(ctx context.Context, fingerprint string) (*model.CacheEntry, bool)
	// PutEntry writes the finished result create-only: the first writer for
	// a fingerprint wins and later writes are no-ops, which keeps a late
	// callback from overwriting a newer attempt's entry.
	PutEntry(ctx context.Context, fingerprint string, entry *model.CacheEntry) (bool, error)

	// TryLock attempts to become the single generator for a fingerprint.
	TryLock(ctx context.Context, fingerprint string) (bool, error)
	// Unlock releases the lock. Releasing an absent lock is not an error.
	Unlock(ctx context.Context, fingerprint string) error
	// LockHeld reports whether generation for a fingerprint is in flight.
	LockHeld(ctx context.Context, fingerprint string) bool

	// RecordJob maps a provider job id back to the request that spawned it.
	RecordJob(ctx context.Context, jobID string, corr *model.Correlation) error
	// ResolveJob looks up the correlation for a job id.
	ResolveJob(ctx context.Context, jobID string) (*model.Correlation, bool)
	// ConsumeJob deletes the correlation and reports whether it still
	// existed, which is the idempotency gate for duplicate callbacks.
	ConsumeJob(ctx context.Context, jobID string) (bool, error)
}

type summaryStore struct {
	store  StateStore
	logger *zap.Logger
}

func NewSummaryStore(store StateStore, logger *zap.Logger) SummaryStore {
	return &summaryStore{store: store, logger: logger}
}

func (s *summaryStore) LookupURL(ctx context.Context, canonicalURL string) (string, bool) {
	val, err := s.store.Get(ctx, urlKey(canonicalURL))
	if err != nil {
		s.logger.Warn("url index read failed, treating as miss",
			zap.String("url", canonicalURL), zap.Error(err))
		return "", false
	}
	if len(val) == 0 {
		return "", false
	}
	return string(val), true
}

func (s *summaryStore) BindURL(ctx context.Context, canonicalURL, fingerprint string) error {
	if err := s.store.Set(ctx, urlKey(canonicalURL), []byte(fingerprint), CacheTTL); err != nil {
		return fmt.Errorf("failed to bind url index entry: %w", err)
	}
	return nil
}

func (s *summaryStore) GetEntry(ctx context.Context, fingerprint string) (*model.CacheEntry, bool) {
	val, err := s.store.Get(ctx, cacheKey(fingerprint))
	if err != nil {
		s.logger.Warn("cache entry read failed, treating as miss",
			zap.String("fingerprint", fingerprint), zap.Error(err))
		return nil, false
	}
	if len(val) == 0 {
		return nil, false
	}
	var entry model.CacheEntry
	if err := json.Unmarshal(val, &entry); err != nil {
		s.logger.Warn("cache entry is corrupt, treating as miss",
			zap.String("fingerprint", fingerprint), zap.Error(err))
		return nil, false
	}
	return &entry, true
}

func (s *summaryStore) PutEntry(ctx context.Context, fingerprint string, entry *model.CacheEntry) (bool, error) {
	val, err := json.Marshal(entry)
	if err != nil {
		return false, fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	created, err := s.store.SetNX(ctx, cacheKey(fingerprint), val, CacheTTL)
	if err != nil {
		return false, fmt.Errorf("failed to write cache entry: %w", err)
	}
	return created, nil
}

func (s *summaryStore) TryLock(ctx context.Context, fingerprint string) (bool, error) {
	acquired, err := s.store.SetNX(ctx, lockKey(fingerprint), []byte(uuid.NewString()), LockTTL)
	if err != nil {
		return false, fmt.Errorf("failed to acquire dedup lock: %w", err)
	}
	return acquired, nil
}

func (s *summaryStore) Unlock(ctx context.Context, fingerprint string) error {
	if _, err := s.store.Delete(ctx, lockKey(fingerprint)); err != nil {
		return fmt.Errorf("failed to release dedup lock: %w", err)
	}
	return nil
}

func (s *summaryStore) LockHeld(ctx context.Context, fingerprint string) bool {
	held, err := s.store.Exists(ctx, lockKey(fingerprint))
	if err != nil {
		s.logger.Warn("dedup lock read failed, treating as not held",
			zap.String("fingerprint", fingerprint), zap.Error(err))
		return false
	}
	return held
}

func (s *summaryStore) RecordJob(ctx context.Context, jobID string, corr *model.Correlation) error {
	val, err := json.Marshal(corr)
	if err != nil {
		return fmt.Errorf("failed to marshal correlation entry: %w", err)
	}
	if err := s.store.Set(ctx, jobKey(jobID), val, CorrelationTTL); err != nil {
		return fmt.Errorf("failed to record correlation entry: %w", err)
	}
	return nil
}

func (s *summaryStore) ResolveJob(ctx context.Context, jobID string) (*model.Correlation, bool) {
	val, err := s.store.Get(ctx, jobKey(jobID))
	if err != nil {
		s.logger.Warn("correlation read failed, treating as miss",
			zap.String("job_id", jobID), zap.Error(err))
		return nil, false
	}
	if len(val) == 0 {
		return nil, false
	}
	var corr model.Correlation
	if err := json.Unmarshal(val, &corr); err != nil {
		s.logger.Warn("correlation entry is corrupt, treating as miss",
			zap.String("job_id", jobID), zap.Error(err))
		return nil, false
	}
	return &corr, true
}

func (s *summaryStore) ConsumeJob(ctx context.Context, jobID string) (bool, error) {
	existed, err := s.store.Delete(ctx, jobKey(jobID))
	if err != nil {
		return false, fmt.Errorf("failed to delete correlation entry: %w", err)
	}
	return existed, nil
}
