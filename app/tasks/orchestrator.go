package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/seojin-dev/newsradar/app/classify"
	"github.com/seojin-dev/newsradar/app/collect"
	"github.com/seojin-dev/newsradar/app/database"
	"github.com/seojin-dev/newsradar/app/registry"
)

// ErrRunInProgress is returned when a collection run is triggered while
// another one is still running.
var ErrRunInProgress = errors.New("collection run already in progress")

// SourceResult records the outcome of fetching one source during a run.
type SourceResult struct {
	OK       bool   `json:"ok"`
	Articles int    `json:"articles"`
	Error    string `json:"error,omitempty"`
}

// RunStats summarizes one collection run. It is built by the orchestrator's
// fan-in loop and immutable once returned.
type RunStats struct {
	Sources      map[string]SourceResult `json:"sources"`
	Collected    int                     `json:"collected"`
	Deduplicated int                     `json:"deduplicated"`
	Inserted     int                     `json:"inserted"`
	Updated      int                     `json:"updated"`
	Skipped      int                     `json:"skipped"`
	Elapsed      time.Duration           `json:"elapsed"`
}

// Failures counts the sources that did not produce a result.
func (s *RunStats) Failures() int {
	failures := 0
	for _, result := range s.Sources {
		if !result.OK {
			failures++
		}
	}
	return failures
}

// Orchestrator runs the full pipeline across the registered sources under
// bounded concurrency. Source failures are isolated; only an unreachable
// store fails a run.
type Orchestrator struct {
	sources     []registry.Source
	fetcher     *collect.Fetcher
	repo        database.ArticleRepository
	extractor   *collect.Extractor
	classifier  *classify.Classifier
	workerCount int
	runTimeout  time.Duration
	running     atomic.Bool
}

func NewOrchestrator(sources []registry.Source, fetcher *collect.Fetcher,
	repo database.ArticleRepository, extractor *collect.Extractor,
	classifier *classify.Classifier, workerCount int, runTimeout time.Duration) *Orchestrator {
	return &Orchestrator{
		sources:     sources,
		fetcher:     fetcher,
		repo:        repo,
		extractor:   extractor,
		classifier:  classifier,
		workerCount: workerCount,
		runTimeout:  runTimeout,
	}
}

// Running reports whether a collection run is currently in flight.
func (o *Orchestrator) Running() bool {
	return o.running.Load()
}

type fetchResult struct {
	source   string
	articles []collect.Article
	err      error
}

// RunOnce fetches every registered source (optionally capped to the first
// sourceLimit), deduplicates the merged stream and upserts it. Fetching runs
// on a bounded worker pool under the run deadline; results are collected
// through a single fan-in channel, so the statistics are never mutated
// concurrently.
func (o *Orchestrator) RunOnce(ctx context.Context, sourceLimit int) (*RunStats, error) {
	if !o.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer o.running.Store(false)

	start := time.Now()

	sources := o.sources
	if sourceLimit > 0 && sourceLimit < len(sources) {
		sources = sources[:sourceLimit]
	}

	runCtx, cancel := context.WithTimeout(ctx, o.runTimeout)
	defer cancel()

	workers := o.workerCount
	if workers > len(sources) {
		workers = len(sources)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan registry.Source)
	results := make(chan fetchResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for src := range jobs {
				articles, err := o.fetcher.Run(runCtx, src)
				results <- fetchResult{source: src.Name, articles: articles, err: err}
			}
		}()
	}

	go func() {
		for _, src := range sources {
			jobs <- src
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	stats := &RunStats{Sources: make(map[string]SourceResult, len(sources))}

	var merged []collect.Article
	for result := range results {
		if result.err != nil {
			slog.Warn("Source fetch failed", "source", result.source, "error", result.err)
			stats.Sources[result.source] = SourceResult{Error: result.err.Error()}
			continue
		}
		stats.Sources[result.source] = SourceResult{OK: true, Articles: len(result.articles)}
		merged = append(merged, result.articles...)
	}
	stats.Collected = len(merged)

	deduped := collect.Deduplicate(merged)
	stats.Deduplicated = len(deduped)

	if err := o.repo.Ping(ctx); err != nil {
		stats.Elapsed = time.Since(start)
		return stats, fmt.Errorf("store unavailable: %w", err)
	}

	for _, article := range deduped {
		result, err := o.repo.Upsert(article)
		if err != nil {
			slog.Error("Failed to persist article", "link", article.Link, "error", err)
			stats.Skipped++
			continue
		}
		switch result {
		case database.UpsertInserted:
			stats.Inserted++
		case database.UpsertUpdated:
			stats.Updated++
		}
	}

	stats.Elapsed = time.Since(start)

	slog.Info("Collection run completed",
		"sources", len(sources),
		"failures", stats.Failures(),
		"collected", stats.Collected,
		"deduplicated", stats.Deduplicated,
		"inserted", stats.Inserted,
		"updated", stats.Updated,
		"skipped", stats.Skipped,
		"duration", stats.Elapsed)

	return stats, nil
}

// RunExtraction enriches persisted articles that still lack body text:
// fetch the page, extract the main content, re-classify with the richer
// text and update the row. Extraction failures skip the article.
func (o *Orchestrator) RunExtraction(ctx context.Context, limit int) int {
	if o.extractor == nil {
		return 0
	}

	articles, err := o.repo.GetArticlesForExtraction(limit)
	if err != nil {
		slog.Error("Failed to list articles for extraction", "error", err)
		return 0
	}

	enriched := 0
	for _, article := range articles {
		select {
		case <-ctx.Done():
			return enriched
		default:
		}

		body, err := o.extractor.Run(ctx, article.Link)
		if err != nil {
			slog.Debug("Body extraction skipped", "link", article.Link, "error", err)
			continue
		}

		cls := o.classifier.Classify(article.Title, article.Summary, body)
		err = o.repo.UpdateArticleBody(article.ID, body, cls.MainCategory, cls.SubCategory, cls.Keywords)
		if err != nil {
			slog.Error("Failed to store extracted body", "link", article.Link, "error", err)
			continue
		}
		enriched++
	}

	if enriched > 0 {
		slog.Info("Body extraction completed", "enriched", enriched, "candidates", len(articles))
	}

	return enriched
}
