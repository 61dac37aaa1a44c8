package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartnote/pkg/cache"
	"github.com/matzehuels/chartnote/pkg/errors"
	"github.com/matzehuels/chartnote/pkg/render/sink"
)

// Runner encapsulates pipeline execution with caching.
// Both the CLI and the preview server use it to avoid duplicating caching
// logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → build → render pipeline with caching.
// When every requested format is cached the widget is not built and
// Result.Widget is nil.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	l, err := Load(opts)
	if err != nil {
		return nil, err
	}
	result.Loaded = l
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Annotations = len(l.Document.Annotations)

	opts.Logger.Info("loaded document",
		"annotations", result.Stats.Annotations,
		"theme", l.Theme.Name,
		"duration", result.Stats.LoadTime)

	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, l, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			opts.Logger.Info("served from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 2: Build
	buildStart := time.Now()
	w, problems, err := r.Build(ctx, l, opts)
	if err != nil {
		return nil, err
	}
	result.Widget = w
	result.Problems = problems
	result.Stats.BuildTime = time.Since(buildStart)
	for _, inst := range w.Annotations().Items() {
		if inst.Drawn() {
			result.Stats.Drawn++
		}
	}
	if opts.Strict && len(problems) > 0 {
		return result, errors.Wrap(errors.ErrCodeInvalidDocument, problems.Err(), "%d annotation problem(s)", len(problems))
	}

	opts.Logger.Info("built widget",
		"annotations", result.Stats.Annotations,
		"drawn", result.Stats.Drawn,
		"problems", len(problems),
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, w, l, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(l.Hash, opts.ArtifactKeyOpts(format, l.Theme.Name))
		if err := r.Cache.Set(ctx, key, data, TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
		}
	}

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// cachedArtifacts returns every requested format from the cache, or false
// when any one is missing.
func (r *Runner) cachedArtifacts(ctx context.Context, l *Loaded, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(l.Hash, opts.ArtifactKeyOpts(format, l.Theme.Name))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			return nil, false
		}
		artifacts[format] = data
	}
	return artifacts, true
}

// Resolve loads and builds the document and reports where each annotation
// landed. Reports are cached per document and theme. The bool result
// reports a cache hit; problems are only collected on a miss.
func (r *Runner) Resolve(ctx context.Context, opts Options) (*sink.Report, errors.List, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, false, err
	}
	l, err := Load(opts)
	if err != nil {
		return nil, nil, false, err
	}

	key := r.Keyer.ResolutionKey(l.Hash, l.Theme.Name)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var report sink.Report
			if err := json.Unmarshal(data, &report); err == nil {
				return &report, nil, true, nil
			}
		}
	}

	w, problems, err := r.Build(ctx, l, opts)
	if err != nil {
		return nil, nil, false, err
	}
	defer w.Dispose()

	report := sink.BuildReport(w.Renderer(), w.Annotations().Items(), reportOptions(l.Theme.Name, l.Path)...)
	if data, err := json.Marshal(report); err == nil {
		_ = r.Cache.Set(ctx, key, data, TTLArtifact)
	}
	return &report, problems, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
