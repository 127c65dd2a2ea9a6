package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lifeline/pkg/cache"
	"github.com/matzehuels/lifeline/pkg/observability"
	"github.com/matzehuels/lifeline/pkg/render/sink"
	"github.com/matzehuels/lifeline/pkg/timeline"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, text string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Layout
	layoutStart := time.Now()
	scene, sceneHit, err := r.LayoutWithCacheInfo(ctx, text, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Scene = scene
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.EventCount = scene.Len()
	result.Stats.SkippedLines = len(scene.Warnings)
	result.Stats.RowCount = scene.Rows()
	result.CacheInfo.SceneHit = sceneHit

	r.Logger.Info("computed layout",
		"events", scene.Len(),
		"skipped", len(scene.Warnings),
		"cached", sceneHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, sceneHash, renderHit, err := r.render(ctx, scene, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.SceneHash = sceneHash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo builds the scene with caching and returns cache hit info.
// Failed and zero-event layouts are never cached, so an empty scene accepted
// with AllowEmpty cannot satisfy a later strict request.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, text string, opts Options) (timeline.Scene, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return timeline.Scene{}, false, err
	}

	cacheKey := r.Keyer.SceneKey(cache.Hash([]byte(text)), opts.SceneKeyOpts())

	hooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if scene, err := sink.ParseJSON(data); err == nil {
				hooks.OnCacheHit(ctx, observability.KeyTypeScene)
				for _, w := range scene.Warnings {
					opts.Logger.Warn("skipped line", "reason", w)
				}
				return scene, true, nil
			}
			r.Logger.Debug("discarding unreadable cached scene", "key", cacheKey)
		} else if err != nil {
			r.Logger.Debug("cache get failed", "key", cacheKey, "err", err)
		}
		hooks.OnCacheMiss(ctx, observability.KeyTypeScene)
	}

	observability.Pipeline().OnLayoutStart(ctx)
	start := time.Now()
	scene, err := Layout(text, opts)
	observability.Pipeline().OnLayoutComplete(ctx, scene.Len(), len(scene.Warnings), time.Since(start), err)
	if err != nil {
		return scene, false, err
	}

	if scene.Len() == 0 {
		return scene, false, nil
	}
	if data, err := sink.RenderJSON(scene); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.SceneTTL); err != nil {
			r.Logger.Debug("cache set failed", "key", cacheKey, "err", err)
		} else {
			hooks.OnCacheSet(ctx, observability.KeyTypeScene, len(data))
		}
	}
	return scene, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, text string, opts Options) (timeline.Scene, error) {
	scene, _, err := r.LayoutWithCacheInfo(ctx, text, opts)
	return scene, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s timeline.Scene, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	artifacts, _, hit, err := r.render(ctx, s, opts)
	return artifacts, hit, err
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, s timeline.Scene, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, s, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, s timeline.Scene, opts Options) (map[string][]byte, string, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}

	sceneData, err := sink.RenderJSON(s)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize scene for cache key: %w", err)
	}
	sceneHash := cache.Hash(sceneData)

	hooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				hooks.OnCacheHit(ctx, observability.KeyTypeArtifact)
				artifacts[format] = data
				continue
			}
			hooks.OnCacheMiss(ctx, observability.KeyTypeArtifact)
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, sceneHash, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	observability.Pipeline().OnRenderStart(ctx, missing)
	start := time.Now()
	rendered, err := Render(ctx, s, renderOpts)
	observability.Pipeline().OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
			r.Logger.Debug("cache set failed", "key", key, "err", err)
		} else {
			hooks.OnCacheSet(ctx, observability.KeyTypeArtifact, len(data))
		}
	}
	return artifacts, sceneHash, false, nil
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
