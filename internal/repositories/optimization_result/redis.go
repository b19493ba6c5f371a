package optimizationresult

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/xp-optimizer/internal/entities/optimization"
	"github.com/KirkDiggler/xp-optimizer/internal/errors"
	"github.com/KirkDiggler/xp-optimizer/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/xp-optimizer/internal/redis"
)

const (
	// Key pattern: xp_result:{fingerprint}
	resultKeyPrefix = "xp_result:"

	// DefaultTTL applies when neither the config nor the call sets one
	DefaultTTL = 24 * time.Hour

	errFingerprintEmpty = "fingerprint cannot be empty"
	errResultNil        = "result cannot be nil"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client     redisclient.Client
	Clock      clock.Clock
	DefaultTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.DefaultTTL < 0 {
		vb.Field("DefaultTTL", "must not be negative")
	}
	return vb.Build()
}

type redisRepository struct {
	client     redisclient.Client
	clock      clock.Clock
	defaultTTL time.Duration
}

// storedResult is the cached document
type storedResult struct {
	Result   *optimization.Result `json:"result"`
	StoredAt time.Time            `json:"stored_at"`
}

// NewRedisRepository creates a new Redis repository for optimization results
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.DefaultTTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &redisRepository{
		client:     cfg.Client,
		clock:      cfg.Clock,
		defaultTTL: ttl,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Get retrieves a cached result by fingerprint
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Fingerprint == "" {
		return nil, errors.InvalidArgument(errFingerprintEmpty)
	}

	raw, err := r.client.Get(ctx, buildKey(input.Fingerprint)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("optimization result not found")
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get result from Redis")
	}

	var stored storedResult
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal result")
	}
	if stored.Result == nil {
		return nil, errors.Internal("cached result is empty")
	}

	return &GetOutput{
		Result:   stored.Result,
		StoredAt: stored.StoredAt,
	}, nil
}

// Put stores a result under its fingerprint with a TTL
func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
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

	raw, err := json.Marshal(storedResult{Result: input.Result, StoredAt: now})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal result")
	}

	if err := r.client.Set(ctx, buildKey(input.Fingerprint), raw, ttl).Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to store result in Redis")
	}

	return &PutOutput{ExpiresAt: now.Add(ttl)}, nil
}

func buildKey(fingerprint string) string {
	return resultKeyPrefix + fingerprint
}
