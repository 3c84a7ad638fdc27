package roles

import (
	"context"
	"errors"
	"sort"
	"sync"

	"resume-reviewer/internal/shared/storage/object"
	"resume-reviewer/internal/shared/telemetry"
)

// Retriever is an in-memory nearest-neighbor index of reference roles,
// optionally mirrored to an object store snapshot. Writers take the
// exclusive lock for the append and the snapshot write; searches share it.
type Retriever struct {
	mu       sync.RWMutex
	embedder Embedder
	records  []Record

	store  object.ObjectStore
	prefix string
}

// Options configure a Retriever. A nil Store keeps the index in memory only.
type Options struct {
	Embedder Embedder
	Store    object.ObjectStore
	Prefix   string
}

// New builds a retriever and loads any existing snapshot. A missing or
// unusable snapshot is logged and the retriever starts empty.
func New(ctx context.Context, opts Options) *Retriever {
	if opts.Embedder == nil {
		opts.Embedder = NewNGramEmbedder(DefaultDimension)
	}
	r := &Retriever{embedder: opts.Embedder, store: opts.Store, prefix: opts.Prefix}
	if r.store == nil {
		return r
	}

	records, err := loadSnapshot(ctx, r.store, r.prefix, r.embedder)
	switch {
	case err == nil:
		r.records = records
		telemetry.Info("roles.snapshot_loaded", map[string]any{
			"count":    len(records),
			"embedder": r.embedder.Name(),
			"prefix":   r.prefix,
		})
	case errors.Is(err, object.ErrNotFound):
		telemetry.Info("roles.snapshot_missing", map[string]any{"prefix": r.prefix})
	default:
		telemetry.Warn("roles.snapshot_load_failed", map[string]any{
			"prefix": r.prefix,
			"error":  err.Error(),
		})
	}
	return r
}

// Embedder returns the name of the active embedder.
func (r *Retriever) Embedder() string { return r.embedder.Name() }

// AddRoles embeds and appends roles, then rewrites the snapshot. It returns
// the number of roles added.
func (r *Retriever) AddRoles(ctx context.Context, roles []Role) int {
	if len(roles) == 0 {
		return 0
	}
	added := make([]Record, 0, len(roles))
	for _, role := range roles {
		added = append(added, Record{Role: role, Vector: r.embedder.Embed(role.Text())})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, added...)

	telemetry.Info("roles.added", map[string]any{"added": len(added), "total": len(r.records)})
	if r.store != nil {
		if err := saveSnapshot(ctx, r.store, r.prefix, r.embedder, r.records); err != nil {
			telemetry.Error("roles.snapshot_save_failed", map[string]any{
				"prefix": r.prefix,
				"error":  err.Error(),
			})
		}
	}
	return len(added)
}

// SearchSimilarRoles returns up to k roles closest to query, nearest first.
// Ties keep insertion order.
func (r *Retriever) SearchSimilarRoles(ctx context.Context, query string, k int) []Match {
	if k <= 0 || ctx.Err() != nil {
		return []Match{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.records) == 0 {
		return []Match{}
	}

	q := r.embedder.Embed(query)
	matches := make([]Match, len(r.records))
	for i, rec := range r.records {
		matches[i] = Match{Role: rec.Role, Distance: euclidean(q, rec.Vector)}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	if k < len(matches) {
		matches = matches[:k]
	}
	return matches
}

// Len reports how many roles are indexed.
func (r *Retriever) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Titles lists indexed role titles in insertion order.
func (r *Retriever) Titles() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.Role.Title
	}
	return out
}

// SeedIfEmpty adds the built-in roles when nothing is indexed yet.
func (r *Retriever) SeedIfEmpty(ctx context.Context) (int, error) {
	if r.Len() > 0 {
		return 0, nil
	}
	seed, err := SeedRoles()
	if err != nil {
		return 0, err
	}
	return r.AddRoles(ctx, seed), nil
}
