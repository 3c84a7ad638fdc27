package insights

import (
	"context"
	"time"

	"resume-reviewer/internal/shared/metrics"
	"resume-reviewer/internal/shared/telemetry"
)

const DefaultTimeout = 20 * time.Second

// Service wraps a Generator with a deadline, an optional cache and the
// fallback review. It never fails.
type Service struct {
	gen      Generator
	model    string
	cache    Cache
	cacheTTL time.Duration
	timeout  time.Duration
}

// Options configure a Service. A nil Generator always yields the fallback.
type Options struct {
	Generator Generator
	Model     string
	Cache     Cache
	CacheTTL  time.Duration
	Timeout   time.Duration
}

func NewService(opts Options) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Service{
		gen:      opts.Generator,
		model:    opts.Model,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		timeout:  opts.Timeout,
	}
}

// Enabled reports whether a model backs the service.
func (s *Service) Enabled() bool { return s.gen != nil }

// Generate returns model insights, a cached copy, or the fallback.
func (s *Service) Generate(ctx context.Context, in Input) Insights {
	if s.gen == nil {
		metrics.IncInsightsFallback()
		return Fallback(in.TargetRole)
	}

	key := CacheKey(s.model, in)
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			telemetry.Warn("insights.cache_get_failed", map[string]any{"error": err.Error()})
		}
		if ok {
			cached.Source = SourceCache
			metrics.IncInsightsCacheHit()
			return cached
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	out, err := s.gen.Generate(ctx, in)
	if err != nil {
		telemetry.Warn("insights.fallback", map[string]any{
			"error":       err.Error(),
			"target_role": in.TargetRole,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		metrics.IncInsightsFallback()
		return Fallback(in.TargetRole)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, out, s.cacheTTL); err != nil {
			telemetry.Warn("insights.cache_set_failed", map[string]any{"error": err.Error()})
		}
	}
	return out
}
