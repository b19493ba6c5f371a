package optimizationresult

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/KirkDiggler/xp-optimizer/internal/entities/optimization"
	"github.com/KirkDiggler/xp-optimizer/internal/errors"
	"github.com/KirkDiggler/xp-optimizer/internal/pkg/clock"
)

// memoryEntry holds the encoded result so callers never share maps with the cache
type memoryEntry struct {
	raw       []byte
	storedAt  time.Time
	expiresAt time.Time
}

// InMemoryRepository implements Repository with a process-local map
type InMemoryRepository struct {
	mu         sync.RWMutex
	store      map[string]memoryEntry
	clock      clock.Clock
	defaultTTL time.Duration
}

// NewInMemory creates a new in-memory repository. A nil clock uses real time.
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		store:      make(map[string]memoryEntry),
		clock:      c,
		defaultTTL: DefaultTTL,
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Get retrieves a cached result by fingerprint
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.Fingerprint == "" {
		return nil, errors.InvalidArgument(errFingerprintEmpty)
	}

	r.mu.RLock()
	entry, ok := r.store[input.Fingerprint]
	r.mu.RUnlock()

	if !ok || !r.clock.Now().Before(entry.expiresAt) {
		return nil, errors.NotFound("optimization result not found")
	}

	var result optimization.Result
	if err := json.Unmarshal(entry.raw, &result); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal result")
	}

	return &GetOutput{Result: &result, StoredAt: entry.storedAt}, nil
}

// Put stores a result under its fingerprint with a TTL
func (r *InMemoryRepository) Put(_ context.Context, input PutInput) (*PutOutput, error) {
	if input.Fingerprint == "" {
		return nil, errors.InvalidArgument(errFingerprintEmpty)
	}
	if input.Result == nil {
		return nil, errors.InvalidArgument(errResultNil)
	}

	ttl := input.TTL
	if ttl == 0 {
		ttl = r.defaultTTL
	}
	now := r.clock.Now()

	raw, err := json.Marshal(input.Result)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal result")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[input.Fingerprint] = memoryEntry{
		raw:       raw,
		storedAt:  now,
		expiresAt: now.Add(ttl),
	}

	return &PutOutput{ExpiresAt: now.Add(ttl)}, nil
}
