package optimizationresult_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/xp-optimizer/internal/errors"
	"github.com/KirkDiggler/xp-optimizer/internal/pkg/clock"
	optimizationresult "github.com/KirkDiggler/xp-optimizer/internal/repositories/optimization_result"
	"github.com/KirkDiggler/xp-optimizer/internal/testutils"
)

func TestInMemoryRepository(t *testing.T) {
	ctx := context.Background()
	c := clock.NewFixed(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), 0)
	repo := optimizationresult.NewInMemory(c)
	result := testutils.BaselineResult()

	_, err := repo.Get(ctx, optimizationresult.GetInput{Fingerprint: testFingerprint})
	assert.True(t, errors.IsNotFound(err))

	out, err := repo.Put(ctx, optimizationresult.PutInput{Fingerprint: testFingerprint, Result: result, TTL: time.Minute})
	require.NoError(t, err)
	assert.Equal(t, c.At.Add(time.Minute), out.ExpiresAt)

	got, err := repo.Get(ctx, optimizationresult.GetInput{Fingerprint: testFingerprint})
	require.NoError(t, err)
	assert.Equal(t, result, got.Result)
	assert.NotSame(t, result, got.Result)
	assert.Equal(t, c.At, got.StoredAt)

	c.At = c.At.Add(time.Minute)
	_, err = repo.Get(ctx, optimizationresult.GetInput{Fingerprint: testFingerprint})
	assert.True(t, errors.IsNotFound(err), "entries expire at their deadline")
}

func TestInMemoryRepositoryIsolatesResults(t *testing.T) {
	ctx := context.Background()
	repo := optimizationresult.NewInMemory(nil)
	result := testutils.BaselineResult()

	_, err := repo.Put(ctx, optimizationresult.PutInput{Fingerprint: testFingerprint, Result: result})
	require.NoError(t, err)

	result.Attributes.Total["Strength"] = 12

	first, err := repo.Get(ctx, optimizationresult.GetInput{Fingerprint: testFingerprint})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Result.Attributes.Total["Strength"])

	first.Result.Skills.Rank["Athletics"] = 8
	first.Result.Attributes.Target["Strength"] = 5

	second, err := repo.Get(ctx, optimizationresult.GetInput{Fingerprint: testFingerprint})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Result.Skills.Rank["Athletics"])
	assert.NotContains(t, second.Result.Attributes.Target, "Strength")
}

func TestInMemoryRepositoryValidation(t *testing.T) {
	ctx := context.Background()
	repo := optimizationresult.NewInMemory(nil)

	_, err := repo.Get(ctx, optimizationresult.GetInput{})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = repo.Put(ctx, optimizationresult.PutInput{Fingerprint: testFingerprint})
	assert.True(t, errors.IsInvalidArgument(err))
}
