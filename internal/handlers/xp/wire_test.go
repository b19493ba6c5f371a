package xp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/xp-optimizer/internal/engine/branchbound"
	"github.com/KirkDiggler/xp-optimizer/internal/errors"
	"github.com/KirkDiggler/xp-optimizer/internal/handlers/xp"
	"github.com/KirkDiggler/xp-optimizer/internal/orchestrators/optimizer"
	"github.com/KirkDiggler/xp-optimizer/internal/pkg/idgen"
	"github.com/KirkDiggler/xp-optimizer/internal/testutils"
)

type WireTestSuite struct {
	suite.Suite
}

func TestWireSuite(t *testing.T) {
	suite.Run(t, new(WireTestSuite))
}

func (s *WireTestSuite) TestDecodeTargetValuesKeepsLiterals() {
	values, err := xp.DecodeTargetValuesString(`{"Tier": 2, "Strength": 3.0, "Scholar": "4"}`)

	s.Require().NoError(err)
	s.Equal(json.Number("2"), values["Tier"])
	s.Equal(json.Number("3.0"), values["Strength"])
	s.Equal("4", values["Scholar"])
}

func (s *WireTestSuite) TestDecodeTargetValuesRejectsNonObjects() {
	for _, body := range []string{`[1, 2]`, `3`, `{"Tier": 1} {"Tier": 2}`, `{"Tier":`} {
		_, err := xp.DecodeTargetValuesString(body)

		s.True(errors.IsInvalidArgument(err), "body %s", body)
	}
}

func (s *WireTestSuite) TestDecodeTargetValuesNull() {
	values, err := xp.DecodeTargetValuesString(`null`)

	s.Require().NoError(err)
	s.Empty(values)
}

func (s *WireTestSuite) TestDecodeOptimizeXPRequest() {
	req, err := xp.DecodeOptimizeXPRequest(strings.NewReader(
		`{"target_values": {"Int": 5}, "max_nodes": 200, "skip_cache": true}`))

	s.Require().NoError(err)
	s.Equal(map[string]interface{}{"Int": json.Number("5")}, req.TargetValues)
	s.Equal(200, req.MaxNodes)
	s.True(req.SkipCache)

	req, err = xp.DecodeOptimizeXPRequest(strings.NewReader(`{}`))
	s.Require().NoError(err)
	s.Empty(req.TargetValues)
	s.Equal(&optimizer.OptimizeXPInput{TargetValues: map[string]interface{}{}}, req.Input())
}

func (s *WireTestSuite) TestTargetValuesFromStruct() {
	st, err := structpb.NewStruct(map[string]interface{}{
		"Tier":     2.0,
		"Strength": 3.5,
		"Scholar":  "4",
		"Stealth":  true,
	})
	s.Require().NoError(err)

	values := xp.TargetValuesFromStruct(st)

	s.Equal(int64(2), values["Tier"])
	s.Equal(3.5, values["Strength"])
	s.Equal("4", values["Scholar"])
	s.Equal(true, values["Stealth"])
}

func (s *WireTestSuite) TestOptimizeXPRequestFromStruct() {
	st, err := structpb.NewStruct(map[string]interface{}{
		"target_values": map[string]interface{}{"Tier": 1.0, "Agility": 4.0},
		"max_nodes":     50.0,
	})
	s.Require().NoError(err)

	req, err := xp.OptimizeXPRequestFromStruct(st)

	s.Require().NoError(err)
	s.Equal(map[string]interface{}{"Tier": int64(1), "Agility": int64(4)}, req.TargetValues)
	s.Equal(50, req.MaxNodes)
	s.False(req.SkipCache)
}

func (s *WireTestSuite) TestOptimizeXPRequestFromStructRejectsBadEnvelope() {
	testCases := map[string]map[string]interface{}{
		"target values": {"target_values": "Tier=1"},
		"max nodes":     {"max_nodes": 1.5},
		"skip cache":    {"skip_cache": "yes"},
	}
	for name, fields := range testCases {
		s.Run(name, func() {
			st, err := structpb.NewStruct(fields)
			s.Require().NoError(err)

			_, err = xp.OptimizeXPRequestFromStruct(st)

			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *WireTestSuite) TestStructRoundTripKeepsRowOrder() {
	resp := xp.NewOptimizeXPResponse(&optimizer.OptimizeXPOutput{
		RunID:    "run_1",
		Nodes:    12,
		Duration: 1500 * time.Microsecond,
		Result:   testutils.BaselineResult(),
	})
	s.Equal(1.5, resp.DurationMS)

	st, err := xp.ToStruct(resp)
	s.Require().NoError(err)

	var decoded xp.OptimizeXPResponse
	s.Require().NoError(xp.FromStruct(st, &decoded))

	s.Equal("run_1", decoded.RunID)
	s.Equal(12, decoded.Nodes)
	s.Equal(testutils.BaselineResult(), decoded.Result)
}

func (s *WireTestSuite) TestErrorResponse() {
	err := errors.InvalidTargetValues(map[string]interface{}{"Luck": 1}, []string{"Luck: unknown target value"})

	resp := xp.NewErrorResponse(err)

	s.Equal("INVALID_ARGUMENT", resp.Code)
	s.Equal("invalid target values", resp.Message)
	s.Equal([]string{"Luck: unknown target value"}, resp.Reasons)
}

func (s *WireTestSuite) TestErrorReasonsAfterGRPC() {
	err := errors.FromGRPCError(errors.ToGRPCError(
		errors.InvalidTargetValues(map[string]interface{}{"Luck": 1}, []string{"Luck: unknown target value"})))

	s.Equal([]string{"Luck: unknown target value"}, xp.ErrorReasons(err))
	s.Nil(xp.ErrorReasons(errors.Internal("boom")))

	described := xp.Describe(err)
	s.Equal("invalid target values\n  Luck: unknown target value", described.Error())
	s.True(errors.IsInvalidArgument(described))
	s.NoError(xp.Describe(nil))
}

func (s *WireTestSuite) TestDecodeTargetValuesYAML() {
	values, err := xp.DecodeTargetValuesYAML(strings.NewReader("Tier: 2\nInt: 5\nScholar: 1.5\n"))

	s.Require().NoError(err)
	s.Equal(map[string]interface{}{"Tier": 2, "Int": 5, "Scholar": 1.5}, values)

	values, err = xp.DecodeTargetValuesYAML(strings.NewReader(""))
	s.Require().NoError(err)
	s.Empty(values)

	_, err = xp.DecodeTargetValuesYAML(strings.NewReader("- 1\n- 2\n"))
	s.True(errors.IsInvalidArgument(err))
}

func (s *WireTestSuite) TestReadTargetValuesFile() {
	dir := s.T().TempDir()
	jsonPath := filepath.Join(dir, "scout.json")
	yamlPath := filepath.Join(dir, "scout.YML")
	s.Require().NoError(os.WriteFile(jsonPath, []byte(`{"Tier": 1, "Stealth": 10}`), 0o600))
	s.Require().NoError(os.WriteFile(yamlPath, []byte("Tier: 1\nStealth: 10\n"), 0o600))

	values, err := xp.ReadTargetValuesFile(jsonPath)
	s.Require().NoError(err)
	s.Equal(json.Number("10"), values["Stealth"])

	values, err = xp.ReadTargetValuesFile(yamlPath)
	s.Require().NoError(err)
	s.Equal(10, values["Stealth"])

	_, err = xp.ReadTargetValuesFile(filepath.Join(dir, "missing.json"))
	s.True(errors.IsInvalidArgument(err))
}

func (s *WireTestSuite) TestListTargetValuesResponse() {
	solver, err := branchbound.New(&branchbound.Config{})
	s.Require().NoError(err)
	svc, err := optimizer.NewOrchestrator(&optimizer.Config{
		Solver:      solver,
		EventBus:    events.NewBus(),
		IDGenerator: idgen.NewSequential("run"),
	})
	s.Require().NoError(err)
	out, err := svc.ListTargetValues(context.Background(), &optimizer.ListTargetValuesInput{})
	s.Require().NoError(err)

	resp := xp.NewListTargetValuesResponse(out)

	s.Equal("Tier", resp.Tier.Name)
	s.Equal(1, *resp.Tier.Min)
	s.Equal(5, *resp.Tier.Max)
	s.Equal(1, *resp.Tier.Default)
	s.Len(resp.Skills, 18)

	text := resp.AsText()
	s.True(strings.HasPrefix(text, "The following target values are available:"))
	for _, want := range []string{"TIER", "ATTRIBUTES", "SKILLS", "TRAITS", "optional, default 1", "Ballistic Skill", "[1, 12]", "[3, 22]"} {
		s.Contains(text, want)
	}
}
