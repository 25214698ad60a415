// Package pipeline orchestrates a full index build: discover files,
// extract metadata, derive URLs, classify reference pages, assemble
// records, and republish the remote index.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/docsearch/internal/collector"
	"github.com/Aman-CERP/docsearch/internal/config"
	"github.com/Aman-CERP/docsearch/internal/docurl"
	dserrors "github.com/Aman-CERP/docsearch/internal/errors"
	"github.com/Aman-CERP/docsearch/internal/hierarchy"
	"github.com/Aman-CERP/docsearch/internal/metadata"
	"github.com/Aman-CERP/docsearch/internal/publish"
	"github.com/Aman-CERP/docsearch/internal/record"
)

// Warning is a per-file, non-fatal problem reported in the summary.
type Warning struct {
	Path string
	Err  error
}

// Summary describes one build run.
type Summary struct {
	GuideFiles     int
	ReferenceFiles int
	// Built counts records assembled before the post-build filter.
	Built int
	// Filtered counts placeholder records dropped by the filter.
	Filtered int
	// Published is the number of records accepted by the index
	// service (or that would be, on a dry run).
	Published int
	DryRun    bool
	Warnings  []Warning
	Duration  time.Duration
}

// Pipeline runs index builds against a single doc tree and index.
type Pipeline struct {
	cfg        *config.Config
	pub        publish.Publisher
	collector  *collector.Collector
	deriver    *docurl.Deriver
	classifier *hierarchy.Classifier
	builder    *record.Builder
	cache      *extractionCache
	lock       *BuildLock
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithCache enables the extraction cache used by watch mode to skip
// re-parsing unchanged files between rebuilds.
func WithCache(size int) Option {
	return func(p *Pipeline) {
		cache, err := newExtractionCache(size)
		if err != nil {
			// Cache is an optimization only; run without it.
			slog.Warn("failed to create extraction cache", slog.String("error", err.Error()))
			return
		}
		p.cache = cache
	}
}

// WithLockPath overrides the build lock file location.
func WithLockPath(path string) Option {
	return func(p *Pipeline) {
		p.lock = NewBuildLock(path)
	}
}

// New creates a Pipeline for the given configuration and publisher.
func New(cfg *config.Config, pub publish.Publisher, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, dserrors.ConfigError("invalid configuration", err)
	}

	p := &Pipeline{
		cfg:        cfg,
		pub:        pub,
		collector:  collector.New(cfg.Exclude),
		deriver:    docurl.New(cfg.StripPrefixes(), cfg.GeneratedSegment, cfg.Extensions),
		classifier: hierarchy.New(cfg.DisplayNames, cfg.ReferenceMarker, cfg.GeneratedSegment),
		builder:    record.NewBuilder(cfg.Extensions),
		lock:       NewBuildLock(DefaultLockPath()),
	}

	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run executes one full build. With dryRun set the remote index is never
// touched and the summary reports what would have been published.
//
// Discovery failures abort before any remote mutation. Once the remote
// clear has executed, the run publishes every successfully built record
// rather than leaving the index empty on a partial local failure.
func (p *Pipeline) Run(ctx context.Context, dryRun bool) (*Summary, error) {
	start := time.Now()

	acquired, err := p.lock.TryLock()
	if err != nil {
		return nil, dserrors.InternalError("failed to acquire build lock", err)
	}
	if !acquired {
		return nil, dserrors.New(dserrors.ErrCodeBuildLock,
			"another build is already running against this tree", nil)
	}
	defer func() { _ = p.lock.Unlock() }()

	files, err := p.collector.Collect(ctx, collector.Roots{
		GuidesRoot:    p.cfg.Guides.Root,
		ReferenceRoot: p.cfg.Reference.Root,
	}, p.cfg.DenySet())
	if err != nil {
		return nil, err
	}

	slog.Info("collected source files",
		slog.Int("guides", len(files.GuidePaths)),
		slog.Int("references", len(files.ReferencePaths)))

	built, warnings, err := p.buildRecords(ctx, files)
	if err != nil {
		return nil, err
	}

	records := record.Filter(built)

	summary := &Summary{
		GuideFiles:     len(files.GuidePaths),
		ReferenceFiles: len(files.ReferencePaths),
		Built:          len(built),
		Filtered:       len(built) - len(records),
		DryRun:         dryRun,
		Warnings:       warnings,
	}

	if dryRun {
		summary.Published = len(records)
		summary.Duration = time.Since(start)
		return summary, nil
	}

	// Clear strictly before publish; stale records must never survive
	// a rebuild.
	if err := p.pub.Clear(ctx); err != nil {
		summary.Duration = time.Since(start)
		return summary, err
	}

	count, err := p.pub.Publish(ctx, records)
	summary.Published = count
	summary.Duration = time.Since(start)
	if err != nil {
		return summary, err
	}

	if count != len(records) {
		return summary, dserrors.PublishError(
			fmt.Sprintf("index accepted %d of %d records", count, len(records)), count, nil)
	}

	slog.Info("published records",
		slog.Int("count", count),
		slog.Duration("duration", summary.Duration))
	return summary, nil
}

// buildRecords runs the per-file stages concurrently. Each file is a pure
// function of its own path and content, so workers share nothing but the
// result slices.
func (p *Pipeline) buildRecords(ctx context.Context, files *collector.Result) ([]record.SearchRecord, []Warning, error) {
	type job struct {
		path   string
		source record.Source
	}

	jobs := make([]job, 0, len(files.GuidePaths)+len(files.ReferencePaths))
	for _, path := range files.GuidePaths {
		jobs = append(jobs, job{path: path, source: record.SourceGuide})
	}
	for _, path := range files.ReferencePaths {
		jobs = append(jobs, job{path: path, source: record.SourceReference})
	}

	records := make([]record.SearchRecord, len(jobs))
	skipped := make([]bool, len(jobs))

	var mu sync.Mutex
	var warnings []Warning

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.EffectiveWorkers())

	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			rec, warn, ok := p.processFile(j.path, j.source)
			if warn != nil {
				mu.Lock()
				warnings = append(warnings, *warn)
				mu.Unlock()
			}
			if !ok {
				skipped[i] = true
				return nil
			}
			records[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	kept := make([]record.SearchRecord, 0, len(records))
	for i, rec := range records {
		if skipped[i] {
			continue
		}
		kept = append(kept, rec)
	}
	return kept, warnings, nil
}

// processFile runs extraction, URL derivation, and classification for a
// single file. Per-file failures become warnings, never build failures.
func (p *Pipeline) processFile(path string, source record.Source) (record.SearchRecord, *Warning, bool) {
	ext, warn := p.extract(path)
	if warn != nil && ext == nil {
		return record.SearchRecord{}, warn, false
	}

	url := p.deriver.Derive(path, string(source))

	var cls *record.Overrides
	if source == record.SourceReference {
		title := ""
		if ext.Meta.Title != nil {
			title = *ext.Meta.Title
		}
		cls = p.classifier.Classify(url, title)
	}

	rec := p.builder.Build(source, ext.Meta, ext.Body, url, cls)
	return rec, warn, true
}

// extract reads and parses one file, consulting the cache when enabled.
// Returns a nil extraction only when the file cannot be read at all.
func (p *Pipeline) extract(path string) (*metadata.Extraction, *Warning) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &Warning{Path: path, Err: dserrors.Wrap(dserrors.ErrCodeFileUnreadable, err)}
	}

	if p.cache != nil {
		if ext, ok := p.cache.get(path, info); ok {
			return ext, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Warning{Path: path, Err: dserrors.Wrap(dserrors.ErrCodeFileUnreadable, err)}
	}

	ext, err := metadata.Extract(path, string(data))
	if err != nil {
		// Metadata degraded to nulls; the file still gets indexed.
		slog.Warn("metadata extraction degraded",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return &ext, &Warning{Path: path, Err: err}
	}

	if p.cache != nil {
		p.cache.put(path, info, &ext)
	}
	return &ext, nil
}
