// Package cache provides the memoization layer used by the HTTP server to
// avoid re-solving or re-rendering identical instances within a run.
package cache

import (
	"context"
	"strings"
	"time"
)

// TTLs for the cacheable pipeline stages. Solutions are exact and never go
// stale, so they outlive rendered artifacts, which are cheaper to recompute.
const (
	TTLSolve    = 24 * time.Hour
	TTLArtifact = 1 * time.Hour
)

// Cache is the interface for cache implementations.
//
// Get reports (data, true, nil) on a hit and (nil, false, nil) on a miss;
// the error return is reserved for backend failures. A ttl of zero on Set
// stores the entry without expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer builds cache keys for the two cacheable stages: solving an
// instance and rendering an artifact from a solution.
type Keyer interface {
	// SolveKey keys a solve result by the full distance matrix. Two
	// instances with identical matrices share a solution regardless of
	// their labels or names.
	SolveKey(rows [][]float64) string

	// InstanceKey keys the rendering identity of an instance: the matrix
	// plus the presentation data (name, labels) that shapes artifacts.
	InstanceKey(name string, labels []string, rows [][]float64) string

	// ArtifactKey keys a rendered artifact by the instance key plus the
	// render parameters that shape the output.
	ArtifactKey(instanceKey string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts contains the render parameters included in artifact
// cache keys.
type ArtifactKeyOpts struct {
	View     string
	Format   string
	Width    float64
	Height   float64
	Detailed bool
}

// DefaultKeyer derives keys by hashing the components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SolveKey generates a key for solve-result caching.
func (k *DefaultKeyer) SolveKey(rows [][]float64) string {
	return hashKey("solve", rows)
}

// InstanceKey generates a key covering everything renderers read from an
// instance.
func (k *DefaultKeyer) InstanceKey(name string, labels []string, rows [][]float64) string {
	return hashKey("instance", name, labels, rows)
}

// ArtifactKey generates a key for rendered-artifact caching.
func (k *DefaultKeyer) ArtifactKey(instanceKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", instanceKey, opts)
}

// keyType extracts the prefix of a key ("solve", "artifact") for
// observability labels.
func keyType(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}
