package v1alpha1_test

import (
	"context"
	"net"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/xp-optimizer/internal/engine"
	"github.com/KirkDiggler/xp-optimizer/internal/engine/branchbound"
	"github.com/KirkDiggler/xp-optimizer/internal/entities/wrathglory"
	"github.com/KirkDiggler/xp-optimizer/internal/errors"
	"github.com/KirkDiggler/xp-optimizer/internal/handlers/xp"
	"github.com/KirkDiggler/xp-optimizer/internal/handlers/xp/v1alpha1"
	"github.com/KirkDiggler/xp-optimizer/internal/orchestrators/optimizer"
	optimizermock "github.com/KirkDiggler/xp-optimizer/internal/orchestrators/optimizer/mock"
	"github.com/KirkDiggler/xp-optimizer/internal/pkg/idgen"
	"github.com/KirkDiggler/xp-optimizer/internal/testutils"
)

const bufSize = 1024 * 1024

// startServer serves svc over an in-memory listener
func startServer(s *suite.Suite, svc optimizer.Service) (v1alpha1.OptimizerServiceClient, func()) {
	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{OptimizerService: svc})
	s.Require().NoError(err)

	lis := bufconn.Listen(bufSize)
	srv := grpc.NewServer()
	v1alpha1.RegisterOptimizerServiceServer(srv, handler)
	go func() {
		_ = srv.Serve(lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)

	return v1alpha1.NewOptimizerServiceClient(conn), func() {
		_ = conn.Close()
		srv.Stop()
	}
}

type HandlerTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockOptimizer *optimizermock.MockService
	client        v1alpha1.OptimizerServiceClient
	cleanup       func()
	ctx           context.Context
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockOptimizer = optimizermock.NewMockService(s.ctrl)
	s.client, s.cleanup = startServer(&s.Suite, s.mockOptimizer)
	s.ctx = context.Background()
}

func (s *HandlerTestSuite) TearDownTest() {
	s.cleanup()
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) request(fields map[string]interface{}) *structpb.Struct {
	st, err := structpb.NewStruct(fields)
	s.Require().NoError(err)
	return st
}

func (s *HandlerTestSuite) TestNewHandlerRequiresService() {
	_, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.True(errors.IsInvalidArgument(err))

	_, err = v1alpha1.NewHandler(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *HandlerTestSuite) TestOptimizeXP() {
	s.mockOptimizer.EXPECT().
		OptimizeXP(gomock.Any(), &optimizer.OptimizeXPInput{
			TargetValues: map[string]interface{}{"Tier": int64(2), "Intellect": int64(5)},
			MaxNodes:     100,
		}).
		Return(&optimizer.OptimizeXPOutput{
			RunID:  "run_1",
			Nodes:  3,
			Result: testutils.BaselineResult(),
		}, nil)

	resp, err := s.client.OptimizeXP(s.ctx, s.request(map[string]interface{}{
		"target_values": map[string]interface{}{"Tier": 2, "Intellect": 5},
		"max_nodes":     100,
	}))
	s.Require().NoError(err)

	var decoded xp.OptimizeXPResponse
	s.Require().NoError(xp.FromStruct(resp, &decoded))
	s.Equal("run_1", decoded.RunID)
	s.Equal(3, decoded.Nodes)
	s.Equal(testutils.BaselineResult(), decoded.Result)
}

func (s *HandlerTestSuite) TestOptimizeXPInvalidTargets() {
	raw := map[string]interface{}{"Luck": int64(3)}
	s.mockOptimizer.EXPECT().
		OptimizeXP(gomock.Any(), gomock.Any()).
		Return(nil, errors.InvalidTargetValues(raw, []string{"Luck: unknown target value"}))

	_, err := s.client.OptimizeXP(s.ctx, s.request(map[string]interface{}{
		"target_values": map[string]interface{}{"Luck": 3},
	}))

	s.Require().Error(err)
	s.Equal(codes.InvalidArgument, status.Code(err))
	converted := errors.FromGRPCError(err)
	s.True(errors.IsInvalidArgument(converted))
	s.Equal([]interface{}{"Luck: unknown target value"}, errors.GetMeta(converted)[errors.MetaReasons])
}

func (s *HandlerTestSuite) TestOptimizeXPSolverOutcomes() {
	testCases := []struct {
		name string
		err  error
		code codes.Code
	}{
		{name: "infeasible", err: errors.FailedPrecondition("targets cannot all be met"), code: codes.FailedPrecondition},
		{name: "not converged", err: errors.Aborted("solver did not converge"), code: codes.Aborted},
		{name: "cost mismatch", err: errors.CostConsistency(4, 0, 4, 0, 5), code: codes.Internal},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockOptimizer.EXPECT().OptimizeXP(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			_, err := s.client.OptimizeXP(s.ctx, s.request(map[string]interface{}{}))

			s.Equal(tc.code, status.Code(err))
		})
	}
}

func (s *HandlerTestSuite) TestOptimizeXPBadEnvelope() {
	_, err := s.client.OptimizeXP(s.ctx, s.request(map[string]interface{}{"max_nodes": -5}))

	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *HandlerTestSuite) TestValidateTargetValues() {
	s.mockOptimizer.EXPECT().
		ValidateTargetValues(gomock.Any(), &optimizer.ValidateTargetValuesInput{
			TargetValues: map[string]interface{}{"Int": int64(4), "Stealth": 2.5},
		}).
		Return(&optimizer.ValidateTargetValuesOutput{Tier: 1, Targets: map[string]int{"Intellect": 4}}, nil)

	resp, err := s.client.ValidateTargetValues(s.ctx, s.request(map[string]interface{}{"Int": 4, "Stealth": 2.5}))
	s.Require().NoError(err)

	var decoded xp.ValidateTargetValuesResponse
	s.Require().NoError(xp.FromStruct(resp, &decoded))
	s.Equal(xp.ValidateTargetValuesResponse{Tier: 1, Targets: map[string]int{"Intellect": 4}}, decoded)
}

func (s *HandlerTestSuite) TestListTargetValues() {
	defaultTier := 1
	s.mockOptimizer.EXPECT().
		ListTargetValues(gomock.Any(), gomock.Any()).
		Return(&optimizer.ListTargetValuesOutput{
			Tier: &optimizer.TargetDescriptor{
				Name:     wrathglory.TierKey,
				Bounds:   wrathglory.TierBounds(),
				Optional: true,
				Default:  &defaultTier,
			},
		}, nil)

	resp, err := s.client.ListTargetValues(s.ctx, &emptypb.Empty{})
	s.Require().NoError(err)

	var decoded xp.ListTargetValuesResponse
	s.Require().NoError(xp.FromStruct(resp, &decoded))
	s.Equal("Tier", decoded.Tier.Name)
	s.Equal(5, *decoded.Tier.Max)
	s.Empty(decoded.Skills)
}

// EndToEndTestSuite serves the real orchestrator and solver
type EndToEndTestSuite struct {
	suite.Suite
	client  v1alpha1.OptimizerServiceClient
	cleanup func()
}

func TestEndToEndSuite(t *testing.T) {
	suite.Run(t, new(EndToEndTestSuite))
}

func (s *EndToEndTestSuite) SetupSuite() {
	solver, err := branchbound.New(&branchbound.Config{})
	s.Require().NoError(err)
	svc, err := optimizer.NewOrchestrator(&optimizer.Config{
		Solver:        solver,
		SolverOptions: engine.Options{WarmStart: true},
		EventBus:      events.NewBus(),
		IDGenerator:   idgen.NewSequential("run"),
	})
	s.Require().NoError(err)

	s.client, s.cleanup = startServer(&s.Suite, svc)
}

func (s *EndToEndTestSuite) TearDownSuite() {
	s.cleanup()
}

func (s *EndToEndTestSuite) TestScholarBuild() {
	targets, err := structpb.NewStruct(map[string]interface{}{"target_values": testutils.ScholarTargets()})
	s.Require().NoError(err)

	resp, err := s.client.OptimizeXP(context.Background(), targets)
	s.Require().NoError(err)

	var decoded xp.OptimizeXPResponse
	s.Require().NoError(xp.FromStruct(resp, &decoded))
	s.Equal(200, decoded.Result.XPCost.Total())
	s.False(decoded.Result.HasMisses())
	s.Equal("Strength", decoded.Result.Attributes.Names[0])
}

func (s *EndToEndTestSuite) TestFractionalTargetRejected() {
	targets, err := structpb.NewStruct(map[string]interface{}{
		"target_values": map[string]interface{}{"Strength": 2.5},
	})
	s.Require().NoError(err)

	_, err = s.client.OptimizeXP(context.Background(), targets)

	s.Equal(codes.InvalidArgument, status.Code(err))
}
