package optimizationresult_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/xp-optimizer/internal/errors"
	"github.com/KirkDiggler/xp-optimizer/internal/pkg/clock"
	"github.com/KirkDiggler/xp-optimizer/internal/redis"
	optimizationresult "github.com/KirkDiggler/xp-optimizer/internal/repositories/optimization_result"
	"github.com/KirkDiggler/xp-optimizer/internal/testutils"
)

const testFingerprint = "4f2c0a"

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	client  redis.Client
	mr      *miniredis.Miniredis
	cleanup func()
	clock   *clock.Fixed
	repo    optimizationresult.Repository
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.client, s.mr, s.cleanup = testutils.CreateTestRedisServer(s.T())
	s.clock = clock.NewFixed(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), 0)

	repo, err := optimizationresult.NewRedisRepository(&optimizationresult.Config{
		Client: s.client,
		Clock:  s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) TestNewRedisRepository() {
	testCases := []struct {
		name   string
		config *optimizationresult.Config
		errMsg string
	}{
		{"nil config", nil, "config cannot be nil"},
		{"missing client", &optimizationresult.Config{Clock: s.clock}, "Client: is required"},
		{"missing clock", &optimizationresult.Config{Client: s.client}, "Clock: is required"},
		{"negative ttl", &optimizationresult.Config{Client: s.client, Clock: s.clock, DefaultTTL: -time.Second}, "DefaultTTL"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			repo, err := optimizationresult.NewRedisRepository(tc.config)
			s.Assert().Nil(repo)
			s.Require().Error(err)
			s.Assert().True(errors.IsInvalidArgument(err))
			s.Assert().Contains(err.Error(), tc.errMsg)
		})
	}
}

func (s *RedisRepositoryTestSuite) TestPutThenGet() {
	result := testutils.BaselineResult()

	out, err := s.repo.Put(s.ctx, optimizationresult.PutInput{
		Fingerprint: testFingerprint,
		Result:      result,
		TTL:         time.Hour,
	})
	s.Require().NoError(err)
	s.Assert().True(s.clock.Now().Add(time.Hour).Equal(out.ExpiresAt))

	s.Assert().True(s.mr.Exists("xp_result:" + testFingerprint))
	s.Assert().Equal(time.Hour, s.mr.TTL("xp_result:"+testFingerprint))

	got, err := s.repo.Get(s.ctx, optimizationresult.GetInput{Fingerprint: testFingerprint})
	s.Require().NoError(err)
	s.Assert().Equal(result, got.Result)
	s.Assert().True(s.clock.Now().Equal(got.StoredAt))
}

func (s *RedisRepositoryTestSuite) TestDefaultTTL() {
	_, err := s.repo.Put(s.ctx, optimizationresult.PutInput{
		Fingerprint: testFingerprint,
		Result:      testutils.BaselineResult(),
	})
	s.Require().NoError(err)
	s.Assert().Equal(optimizationresult.DefaultTTL, s.mr.TTL("xp_result:"+testFingerprint))
}

func (s *RedisRepositoryTestSuite) TestGetExpired() {
	_, err := s.repo.Put(s.ctx, optimizationresult.PutInput{
		Fingerprint: testFingerprint,
		Result:      testutils.BaselineResult(),
		TTL:         time.Minute,
	})
	s.Require().NoError(err)

	s.mr.FastForward(2 * time.Minute)

	_, err = s.repo.Get(s.ctx, optimizationresult.GetInput{Fingerprint: testFingerprint})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, optimizationresult.GetInput{Fingerprint: "absent"})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestGetCorrupt() {
	s.Require().NoError(s.mr.Set("xp_result:"+testFingerprint, "{not json"))

	_, err := s.repo.Get(s.ctx, optimizationresult.GetInput{Fingerprint: testFingerprint})
	s.Assert().True(errors.IsInternal(err))
}

func (s *RedisRepositoryTestSuite) TestValidation() {
	_, err := s.repo.Get(s.ctx, optimizationresult.GetInput{})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.repo.Put(s.ctx, optimizationresult.PutInput{Result: testutils.BaselineResult()})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.repo.Put(s.ctx, optimizationresult.PutInput{Fingerprint: testFingerprint})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestUnavailableServer() {
	s.mr.Close()

	ctx, cancel := context.WithTimeout(s.ctx, 200*time.Millisecond)
	defer cancel()

	_, err := s.repo.Get(ctx, optimizationresult.GetInput{Fingerprint: testFingerprint})
	s.Assert().Equal(errors.CodeUnavailable, errors.GetCode(err))
}
