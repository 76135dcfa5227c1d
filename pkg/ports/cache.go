package ports

import "context"

// RenderCache stores rendered output keyed by a caller-chosen digest.
// It is a best-effort layer: implementations may evict at any time, and the
// preview server treats cache failures as misses.
type RenderCache interface {
	// Get returns the cached rendering for key. The second result reports
	// whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores the rendering for key, replacing any existing entry.
	Set(ctx context.Context, key string, rendered string) error
}
