package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"newsroom/summaryhub/internal/extractor"
	"newsroom/summaryhub/internal/model"
	"newsroom/summaryhub/internal/provider"
	"newsroom/summaryhub/internal/repository"
	"newsroom/summaryhub/pkg/fingerprint"
	"newsroom/summaryhub/pkg/urlnorm"
)

// GenerateRequest is a request to summarize one article.
type GenerateRequest struct {
	URL      string
	Headline string
	RawHTML  string
	Snippet  string
}

// SummaryService orchestrates the cache, the dedup lock, and the inference
// provider. All coordination state lives in the remote store; the service
// itself is stateless and safe for concurrent use.
type SummaryService interface {
	// Generate returns the cached result, triggers generation, or reports
	// that generation is already in flight.
	Generate(ctx context.Context, req GenerateRequest) (*model.GenerateResult, error)
	// Fetch is the poll-only query: it never triggers generation.
	Fetch(ctx context.Context, fp, rawURL string) (*model.FetchResult, error)
}

type summaryService struct {
	store       repository.SummaryStore
	extractor   extractor.Extractor
	provider    provider.Client
	callbackURL string
	logger      *zap.Logger
}

func NewSummaryService(
	store repository.SummaryStore,
	ext extractor.Extractor,
	prov provider.Client,
	callbackURL string,
	logger *zap.Logger,
) SummaryService {
	return &summaryService{
		store:       store,
		extractor:   ext,
		provider:    prov,
		callbackURL: callbackURL,
		logger:      logger,
	}
}

func (s *summaryService) Generate(ctx context.Context, req GenerateRequest) (*model.GenerateResult, error) {
	if strings.TrimSpace(req.URL) == "" {
		return nil, ErrMissingURL
	}

	canonical := urlnorm.Normalize(req.URL)
	headline := strings.TrimSpace(req.Headline)

	// Fast path: the URL is already indexed and its result is still cached.
	// An index entry whose cache entry has expired is a valid transient
	// state; it falls through to re-resolution below.
	if fp, ok := s.store.LookupURL(ctx, canonical); ok {
		if entry, ok := s.store.GetEntry(ctx, fp); ok {
			return &model.GenerateResult{Status: model.StatusComplete, Fingerprint: fp, Entry: entry}, nil
		}
	}

	text := s.extractor.Extract(req.RawHTML, canonical, req.Snippet)
	fp := fingerprint.Compute(canonical, headline, text)

	// Content convergence: another URL alias may have produced this exact
	// fingerprint already. Backfill the index so this alias takes the fast
	// path next time.
	if entry, ok := s.store.GetEntry(ctx, fp); ok {
		if err := s.store.BindURL(ctx, canonical, fp); err != nil {
			s.logger.Warn("failed to backfill url index",
				zap.String("url", canonical), zap.Error(err))
		}
		return &model.GenerateResult{Status: model.StatusComplete, Fingerprint: fp, Entry: entry}, nil
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrNoText
	}

	acquired, err := s.store.TryLock(ctx, fp)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return &model.GenerateResult{Status: model.StatusPending, Fingerprint: fp}, nil
	}

	jobID, err := s.provider.Submit(ctx, provider.SubmitRequest{
		Text:        text,
		Headline:    headline,
		CallbackURL: s.callbackURL,
	})
	if err != nil {
		// Fail fast: nothing will call back for this fingerprint, so free it
		// for an immediate retry instead of waiting out the lock TTL.
		s.releaseLock(ctx, fp)
		return nil, fmt.Errorf("provider submission failed: %w", err)
	}

	corr := &model.Correlation{
		Fingerprint: fp,
		Headline:    headline,
		URL:         canonical,
		Provider:    s.provider.Name(),
	}
	if err := s.store.RecordJob(ctx, jobID, corr); err != nil {
		// Without the correlation the callback can never be honored; release
		// the lock so the next caller can retry.
		s.releaseLock(ctx, fp)
		return nil, err
	}

	return &model.GenerateResult{Status: model.StatusProcessing, Fingerprint: fp, JobID: jobID}, nil
}

func (s *summaryService) Fetch(ctx context.Context, fp, rawURL string) (*model.FetchResult, error) {
	fp = strings.TrimSpace(fp)
	rawURL = strings.TrimSpace(rawURL)
	if fp == "" && rawURL == "" {
		return nil, ErrMissingQuery
	}

	canonical := ""
	if rawURL != "" {
		canonical = urlnorm.Normalize(rawURL)
	}

	if fp == "" {
		indexed, ok := s.store.LookupURL(ctx, canonical)
		if !ok {
			return &model.FetchResult{Status: model.StatusUnknown}, nil
		}
		fp = indexed
	}

	if entry, ok := s.store.GetEntry(ctx, fp); ok {
		// Repair on hit: a caller that knows both the URL and the
		// fingerprint restores the alias fast path for free.
		if canonical != "" {
			if err := s.store.BindURL(ctx, canonical, fp); err != nil {
				s.logger.Warn("failed to repair url index",
					zap.String("url", canonical), zap.Error(err))
			}
		}
		return &model.FetchResult{Status: model.StatusComplete, Fingerprint: fp, Entry: entry}, nil
	}

	if s.store.LockHeld(ctx, fp) {
		return &model.FetchResult{Status: model.StatusPending, Fingerprint: fp}, nil
	}

	return &model.FetchResult{Status: model.StatusUnknown, Fingerprint: fp}, nil
}

func (s *summaryService) releaseLock(ctx context.Context, fp string) {
	if err := s.store.Unlock(ctx, fp); err != nil {
		s.logger.Error("failed to release dedup lock",
			zap.String("fingerprint", fp), zap.Error(err))
	}
}
