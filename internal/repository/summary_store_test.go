package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"newsroom/summaryhub/internal/model"
)

func newTestSummaryStore() SummaryStore {
	return NewSummaryStore(NewMemoryStateStore(), zap.NewNop())
}

func TestSummaryStoreURLIndex(t *testing.T) {
	ctx := context.Background()
	s := newTestSummaryStore()

	_, ok := s.LookupURL(ctx, "https://example.com/a")
	assert.False(t, ok)

	require.NoError(t, s.BindURL(ctx, "https://example.com/a", "fp1"))

	fp, ok := s.LookupURL(ctx, "https://example.com/a")
	require.True(t, ok)
	assert.Equal(t, "fp1", fp)

	// Rebinding to a new fingerprint overwrites the alias.
	require.NoError(t, s.BindURL(ctx, "https://example.com/a", "fp2"))
	fp, ok = s.LookupURL(ctx, "https://example.com/a")
	require.True(t, ok)
	assert.Equal(t, "fp2", fp)
}

func TestSummaryStoreCacheEntryCreateOnly(t *testing.T) {
	ctx := context.Background()
	s := newTestSummaryStore()

	_, ok := s.GetEntry(ctx, "fp")
	assert.False(t, ok)

	first := &model.CacheEntry{Summary: "first", Headline: "H", Provider: "p", CompletedAt: 1}
	created, err := s.PutEntry(ctx, "fp", first)
	require.NoError(t, err)
	assert.True(t, created)

	// A second write for the same fingerprint must not replace the entry.
	created, err = s.PutEntry(ctx, "fp", &model.CacheEntry{Summary: "second"})
	require.NoError(t, err)
	assert.False(t, created)

	entry, ok := s.GetEntry(ctx, "fp")
	require.True(t, ok)
	assert.Equal(t, "first", entry.Summary)
	assert.Equal(t, "H", entry.Headline)
}

func TestSummaryStoreLock(t *testing.T) {
	ctx := context.Background()
	s := newTestSummaryStore()

	assert.False(t, s.LockHeld(ctx, "fp"))

	acquired, err := s.TryLock(ctx, "fp")
	require.NoError(t, err)
	assert.True(t, acquired)
	assert.True(t, s.LockHeld(ctx, "fp"))

	acquired, err = s.TryLock(ctx, "fp")
	require.NoError(t, err)
	assert.False(t, acquired)

	require.NoError(t, s.Unlock(ctx, "fp"))
	assert.False(t, s.LockHeld(ctx, "fp"))

	// Re-acquisition after release must succeed.
	acquired, err = s.TryLock(ctx, "fp")
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestSummaryStoreCorrelation(t *testing.T) {
	ctx := context.Background()
	s := newTestSummaryStore()

	_, ok := s.ResolveJob(ctx, "job-1")
	assert.False(t, ok)

	corr := &model.Correlation{Fingerprint: "fp", Headline: "H", URL: "https://example.com/a", Provider: "p"}
	require.NoError(t, s.RecordJob(ctx, "job-1", corr))

	got, ok := s.ResolveJob(ctx, "job-1")
	require.True(t, ok)
	assert.Equal(t, corr, got)

	existed, err := s.ConsumeJob(ctx, "job-1")
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = s.ConsumeJob(ctx, "job-1")
	require.NoError(t, err)
	assert.False(t, existed)
}

// failingStateStore breaks every operation, to verify the fail-open read /
// fail-closed write policy.
type failingStateStore struct{}

var errTransport = errors.New("transport failure")

func (failingStateStore) Get(context.Context, string) ([]byte, error) { return nil, errTransport }
func (failingStateStore) Set(context.Context, string, []byte, time.Duration) error {
	return errTransport
}
func (failingStateStore) SetNX(context.Context, string, []byte, time.Duration) (bool, error) {
	return false, errTransport
}
func (failingStateStore) Delete(context.Context, string) (bool, error) { return false, errTransport }
func (failingStateStore) Exists(context.Context, string) (bool, error) {
	return false, errTransport
}

func TestSummaryStoreFailurePolicy(t *testing.T) {
	ctx := context.Background()
	s := NewSummaryStore(failingStateStore{}, zap.NewNop())

	// Reads fail open: transport failures surface as misses.
	_, ok := s.LookupURL(ctx, "https://example.com/a")
	assert.False(t, ok)
	_, ok = s.GetEntry(ctx, "fp")
	assert.False(t, ok)
	_, ok = s.ResolveJob(ctx, "job")
	assert.False(t, ok)
	assert.False(t, s.LockHeld(ctx, "fp"))

	// Writes fail closed: errors surface.
	assert.Error(t, s.BindURL(ctx, "https://example.com/a", "fp"))
	_, err := s.PutEntry(ctx, "fp", &model.CacheEntry{Summary: "s"})
	assert.Error(t, err)
	_, err = s.TryLock(ctx, "fp")
	assert.Error(t, err)
	assert.Error(t, s.Unlock(ctx, "fp"))
	assert.Error(t, s.RecordJob(ctx, "job", &model.Correlation{Fingerprint: "fp"}))
	_, err = s.ConsumeJob(ctx, "job")
	assert.Error(t, err)
}
