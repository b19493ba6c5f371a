// Package optimizationresult caches compiled optimization results by request
// fingerprint.
package optimizationresult

import (
	"context"
	"time"

	"github.com/KirkDiggler/xp-optimizer/internal/entities/optimization"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=optimizationresultmock github.com/KirkDiggler/xp-optimizer/internal/repositories/optimization_result Repository

// GetInput contains parameters for looking up a cached result
type GetInput struct {
	Fingerprint string
}

// GetOutput contains a cached result
type GetOutput struct {
	Result   *optimization.Result
	StoredAt time.Time
}

// PutInput contains parameters for caching a result
type PutInput struct {
	Fingerprint string
	Result      *optimization.Result
	// TTL of zero uses the repository default
	TTL time.Duration
}

// PutOutput contains the outcome of caching a result
type PutOutput struct {
	ExpiresAt time.Time
}

// Repository defines the interface for result cache operations
type Repository interface {
	// Get returns NotFound when nothing is cached under the fingerprint
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Put stores a result, replacing any previous entry
	Put(ctx context.Context, input PutInput) (*PutOutput, error)
}
