package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"newsroom/summaryhub/internal/model"
	"newsroom/summaryhub/internal/repository"
)

// CallbackService consumes the provider's completion callbacks. It is an
// independent entry point: it shares no in-process state with the request
// path and touches only the correlation entry and, through it, the cache
// entry and the dedup lock.
type CallbackService interface {
	// Handle finalizes a job. It reports whether a summary was stored and an
	// optional warning for the acknowledgment; err is reserved for store
	// write failures, which the provider may retry.
	Handle(ctx context.Context, ev model.CallbackEvent) (stored bool, warning string, err error)
}

type callbackService struct {
	store  repository.SummaryStore
	logger *zap.Logger
}

func NewCallbackService(store repository.SummaryStore, logger *zap.Logger) CallbackService {
	return &callbackService{store: store, logger: logger}
}

func (s *callbackService) Handle(ctx context.Context, ev model.CallbackEvent) (bool, string, error) {
	corr, ok := s.store.ResolveJob(ctx, ev.JobID)
	if !ok {
		// Unknown or already-consumed job. The provider cannot usefully
		// retry a rejection, and duplicate deliveries land here, so this is
		// a warning and a normal acknowledgment, never an error.
		s.logger.Warn("callback for unknown or already-processed job",
			zap.String("job_id", ev.JobID))
		return false, "unknown job", nil
	}

	switch ev.Outcome {
	case model.OutcomeSucceeded:
		return s.finalize(ctx, ev, corr)
	case model.OutcomeFailed:
		// Free the fingerprint for an immediate retry.
		s.logger.Warn("provider reported job failure",
			zap.String("job_id", ev.JobID),
			zap.String("fingerprint", corr.Fingerprint),
			zap.String("provider_error", ev.Error))
		if err := s.store.Unlock(ctx, corr.Fingerprint); err != nil {
			return false, "", err
		}
		if _, err := s.store.ConsumeJob(ctx, ev.JobID); err != nil {
			return false, "", err
		}
		return false, "job failed: " + ev.Error, nil
	default:
		// Not a terminal outcome; the job is still running. Acknowledge
		// without touching any state.
		return false, "job not finished", nil
	}
}

// finalize writes the result and tears down the coordination state. The
// cache write is create-only, so a duplicate or late callback can never
// overwrite an entry written by a newer attempt; steps after it are deletes
// and an index refresh, all safe to repeat if a retry replays them.
func (s *callbackService) finalize(ctx context.Context, ev model.CallbackEvent, corr *model.Correlation) (bool, string, error) {
	if ev.Output == "" {
		s.logger.Warn("succeeded callback carried no output",
			zap.String("job_id", ev.JobID),
			zap.String("fingerprint", corr.Fingerprint))
		if err := s.store.Unlock(ctx, corr.Fingerprint); err != nil {
			return false, "", err
		}
		if _, err := s.store.ConsumeJob(ctx, ev.JobID); err != nil {
			return false, "", err
		}
		return false, "empty output", nil
	}

	entry := &model.CacheEntry{
		Summary:     ev.Output,
		Headline:    corr.Headline,
		Provider:    corr.Provider,
		CompletedAt: time.Now().UnixMilli(),
	}
	created, err := s.store.PutEntry(ctx, corr.Fingerprint, entry)
	if err != nil {
		// Correlation stays intact so a provider retry can finish the job.
		return false, "", err
	}
	warning := ""
	if !created {
		s.logger.Info("cache entry already present, keeping existing result",
			zap.String("fingerprint", corr.Fingerprint))
		warning = "already stored"
	}

	if corr.URL != "" {
		if err := s.store.BindURL(ctx, corr.URL, corr.Fingerprint); err != nil {
			return false, "", err
		}
	}
	if _, err := s.store.ConsumeJob(ctx, ev.JobID); err != nil {
		return false, "", err
	}
	if err := s.store.Unlock(ctx, corr.Fingerprint); err != nil {
		return false, "", err
	}

	return created, warning, nil
}
