package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/xp-optimizer/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "cached result not found",
			expected: "NOT_FOUND: cached result not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "invalid target values",
			expected: "INVALID_ARGUMENT: invalid target values",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(baseErr, "failed to read cache")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to read cache", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeAborted, "should be nil"))
}

func (s *ErrorsTestSuite) TestWrapPreservesCodeAndMeta() {
	baseErr := errors.InvalidTargetValues(map[string]interface{}{"Luck": 1}, []string{"Luck: unknown property"})
	wrapped := errors.Wrap(baseErr, "optimize xp")

	s.Assert().Equal(errors.CodeInvalidArgument, wrapped.Code)
	s.Assert().Equal(baseErr.Meta, wrapped.Meta)
	s.Assert().True(errors.IsInvalidArgument(wrapped))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := errors.NotFound("gone").WithMeta("key", "value")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeUnavailable, "cache unavailable")

	s.Assert().Equal(errors.CodeUnavailable, wrapped.Code)
	s.Assert().Equal("value", wrapped.Meta["key"])
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestInvalidTargetValues() {
	raw := map[string]interface{}{"Tier": 1, "Luck": 1}
	err := errors.InvalidTargetValues(raw, []string{"Luck: unknown property"})

	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().Equal(raw, err.Meta[errors.MetaTargetValues])
	s.Assert().Equal([]string{"Luck: unknown property"}, err.Meta[errors.MetaReasons])
}

func (s *ErrorsTestSuite) TestCostConsistency() {
	err := errors.CostConsistency(120, 80, 120, 80, 201)

	s.Assert().True(errors.IsInternal(err))
	s.Assert().Contains(err.Message, "120 + 80")
	s.Assert().Contains(err.Message, "201")
	s.Assert().Equal(201.0, err.Meta[errors.MetaReportedObjective])
	s.Assert().Equal(80, err.Meta[errors.MetaComputedSkills])
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.NotFound("test")
	err2 := errors.NotFound("other")
	err3 := errors.InvalidArgument("test")

	s.Assert().True(err1.Is(err2))
	s.Assert().False(err1.Is(err3))
	s.Assert().True(errors.Is(errors.Wrap(err1, "wrapped"), err2))
}

func (s *ErrorsTestSuite) TestHelperFunctions() {
	s.Assert().True(errors.IsFailedPrecondition(errors.FailedPrecondition("infeasible")))
	s.Assert().True(errors.IsAborted(errors.Aborted("node limit")))
	s.Assert().False(errors.IsNotFound(errors.Internal("boom")))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
	s.Assert().Nil(errors.GetMeta(fmt.Errorf("standard error")))
	s.Assert().Equal("standard error", errors.GetMessage(fmt.Errorf("standard error")))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, 200},
		{errors.CodeInvalidArgument, 400},
		{errors.CodeNotFound, 404},
		{errors.CodeFailedPrecondition, 422},
		{errors.CodeInternal, 500},
		{errors.CodeAborted, 503},
		{errors.CodeDeadlineExceeded, 504},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Assert().Equal(tc.expected, tc.code.HTTPStatus())
		})
	}
}

func (s *ErrorsTestSuite) TestGRPCRoundTripKeepsMeta() {
	err := errors.InvalidTargetValues(map[string]interface{}{"Tier": 9}, []string{"Tier: must be between 1 and 5"})

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Assert().Equal(codes.InvalidArgument, st.Code())
	s.Assert().Equal("invalid target values", st.Message())

	back := errors.FromGRPCError(grpcErr)
	s.Assert().Equal(errors.CodeInvalidArgument, errors.GetCode(back))
	meta := errors.GetMeta(back)
	s.Require().NotNil(meta)
	s.Assert().Equal(map[string]interface{}{"Tier": float64(9)}, meta[errors.MetaTargetValues])
}

func (s *ErrorsTestSuite) TestFromPlainGRPCError() {
	err := errors.FromGRPCError(status.Error(codes.Aborted, "node limit reached"))
	s.Assert().True(errors.IsAborted(err))
	s.Assert().Equal("node limit reached", errors.GetMessage(err))
	s.Assert().Nil(errors.GetMeta(err))
}

func (s *ErrorsTestSuite) TestToGRPCErrorWithoutMeta() {
	testCases := []struct {
		name     string
		err      error
		expected codes.Code
	}{
		{"failed precondition", errors.FailedPrecondition("targets cannot all be met"), codes.FailedPrecondition},
		{"aborted", errors.Aborted("solver did not converge"), codes.Aborted},
		{"invalid argument", errors.InvalidArgument("target_values is required"), codes.InvalidArgument},
		{"wrapped canceled", errors.WrapWithCode(fmt.Errorf("context canceled"), errors.CodeCanceled, "optimization canceled"), codes.Canceled},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			var grpcErr error
			s.Require().NotPanics(func() {
				grpcErr = errors.ToGRPCError(tc.err)
			})

			st, ok := status.FromError(grpcErr)
			s.Require().True(ok)
			s.Assert().Equal(tc.expected, st.Code())

			back := errors.FromGRPCError(grpcErr)
			s.Assert().Equal(errors.GetCode(tc.err), errors.GetCode(back))
			s.Assert().Equal(errors.GetMessage(tc.err), errors.GetMessage(back))
		})
	}
}
