// Package xp holds the request and response documents shared by the gRPC and
// HTTP front ends of the optimizer.
package xp

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/xp-optimizer/internal/entities/optimization"
	"github.com/KirkDiggler/xp-optimizer/internal/entities/wrathglory"
	"github.com/KirkDiggler/xp-optimizer/internal/errors"
	"github.com/KirkDiggler/xp-optimizer/internal/orchestrators/optimizer"
)

// OptimizeXPRequest is the body of an optimize call
type OptimizeXPRequest struct {
	TargetValues map[string]interface{} `json:"target_values"`
	MaxNodes     int                    `json:"max_nodes,omitempty"`
	SkipCache    bool                   `json:"skip_cache,omitempty"`
}

// Input converts the request for the orchestrator
func (r *OptimizeXPRequest) Input() *optimizer.OptimizeXPInput {
	return &optimizer.OptimizeXPInput{
		TargetValues: r.TargetValues,
		MaxNodes:     r.MaxNodes,
		SkipCache:    r.SkipCache,
	}
}

// OptimizeXPResponse is the body of a successful optimize call
type OptimizeXPResponse struct {
	RunID      string               `json:"run_id"`
	Cached     bool                 `json:"cached"`
	Nodes      int                  `json:"nodes"`
	DurationMS float64              `json:"duration_ms"`
	Result     *optimization.Result `json:"result"`
}

// NewOptimizeXPResponse converts orchestrator output
func NewOptimizeXPResponse(out *optimizer.OptimizeXPOutput) *OptimizeXPResponse {
	return &OptimizeXPResponse{
		RunID:      out.RunID,
		Cached:     out.Cached,
		Nodes:      out.Nodes,
		DurationMS: float64(out.Duration.Microseconds()) / 1000,
		Result:     out.Result,
	}
}

// ValidateTargetValuesResponse echoes the normalised targets
type ValidateTargetValuesResponse struct {
	Tier    int            `json:"tier"`
	Targets map[string]int `json:"targets"`
}

// NewValidateTargetValuesResponse converts orchestrator output
func NewValidateTargetValuesResponse(out *optimizer.ValidateTargetValuesOutput) *ValidateTargetValuesResponse {
	return &ValidateTargetValuesResponse{Tier: int(out.Tier), Targets: out.Targets}
}

// TargetValueDescriptor describes one accepted key
type TargetValueDescriptor struct {
	Name      string   `json:"name"`
	Aliases   []string `json:"aliases,omitempty"`
	Min       *int     `json:"min"`
	Max       *int     `json:"max"`
	Attribute string   `json:"attribute,omitempty"`
	Optional  bool     `json:"optional"`
	Default   *int     `json:"default,omitempty"`
}

// ListTargetValuesResponse lists every accepted key by category
type ListTargetValuesResponse struct {
	Tier       *TargetValueDescriptor   `json:"tier"`
	Attributes []*TargetValueDescriptor `json:"attributes"`
	Skills     []*TargetValueDescriptor `json:"skills"`
	Traits     []*TargetValueDescriptor `json:"traits"`
}

// NewListTargetValuesResponse converts orchestrator output
func NewListTargetValuesResponse(out *optimizer.ListTargetValuesOutput) *ListTargetValuesResponse {
	return &ListTargetValuesResponse{
		Tier:       newDescriptor(out.Tier),
		Attributes: newDescriptors(out.Attributes),
		Skills:     newDescriptors(out.Skills),
		Traits:     newDescriptors(out.Traits),
	}
}

func newDescriptors(in []*optimizer.TargetDescriptor) []*TargetValueDescriptor {
	out := make([]*TargetValueDescriptor, len(in))
	for i, d := range in {
		out[i] = newDescriptor(d)
	}
	return out
}

func newDescriptor(d *optimizer.TargetDescriptor) *TargetValueDescriptor {
	out := &TargetValueDescriptor{
		Name:      d.Name,
		Aliases:   d.Aliases,
		Attribute: d.Attribute,
		Optional:  d.Optional,
		Default:   d.Default,
	}
	if v, ok := d.Bounds.Min(); ok {
		out.Min = &v
	}
	if v, ok := d.Bounds.Max(); ok {
		out.Max = &v
	}
	return out
}

// ErrorResponse is the body of a failed HTTP call
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Reasons []string `json:"reasons,omitempty"`
}

// NewErrorResponse describes err without leaking its cause chain
func NewErrorResponse(err error) *ErrorResponse {
	resp := &ErrorResponse{
		Code:    string(errors.GetCode(err)),
		Message: errors.GetMessage(err),
	}
	resp.Reasons = ErrorReasons(err)
	return resp
}

// ErrorReasons returns the per-key reasons of an invalid target values error.
// Reasons that crossed gRPC come back as a generic list.
func ErrorReasons(err error) []string {
	switch reasons := errors.GetMeta(err)[errors.MetaReasons].(type) {
	case []string:
		return reasons
	case []interface{}:
		out := make([]string, 0, len(reasons))
		for _, r := range reasons {
			if str, ok := r.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

// describedError prints an error for a terminal
type describedError struct {
	err error
}

func (e *describedError) Error() string {
	var sb strings.Builder
	sb.WriteString(errors.GetMessage(e.err))
	for _, reason := range ErrorReasons(e.err) {
		sb.WriteString("\n  ")
		sb.WriteString(reason)
	}
	return sb.String()
}

func (e *describedError) Unwrap() error {
	return e.err
}

// Describe wraps err so that its text is the message followed by one
// reason per line. Codes and metadata stay reachable through errors.As.
func Describe(err error) error {
	if err == nil {
		return nil
	}
	return &describedError{err: err}
}

// DecodeTargetValues reads a JSON object of target values. Numbers are kept
// as literals so 3.0 stays distinct from 3.
func DecodeTargetValues(r io.Reader) (map[string]interface{}, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var values map[string]interface{}
	if err := dec.Decode(&values); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "target values must be a JSON object")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.InvalidArgument("target values must be a single JSON object")
	}
	if values == nil {
		values = map[string]interface{}{}
	}
	return values, nil
}

// DecodeTargetValuesYAML reads a YAML mapping of target values. YAML
// integers decode as int and anything else is left for the validator.
func DecodeTargetValuesYAML(r io.Reader) (map[string]interface{}, error) {
	var values map[string]interface{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "target values must be a YAML mapping")
	}
	if values == nil {
		values = map[string]interface{}{}
	}
	return values, nil
}

// ReadTargetValuesFile loads target values from a .yaml/.yml or JSON file
func ReadTargetValuesFile(path string) (map[string]interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to open target values file")
	}
	defer func() {
		_ = f.Close()
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeTargetValuesYAML(f)
	default:
		return DecodeTargetValues(f)
	}
}

// DecodeTargetValuesString is DecodeTargetValues over a string
func DecodeTargetValuesString(s string) (map[string]interface{}, error) {
	return DecodeTargetValues(bytes.NewReader([]byte(s)))
}

// DecodeOptimizeXPRequest reads an optimize body with literal numbers
func DecodeOptimizeXPRequest(r io.Reader) (*OptimizeXPRequest, error) {
	var raw struct {
		TargetValues json.RawMessage `json:"target_values"`
		MaxNodes     int             `json:"max_nodes"`
		SkipCache    bool            `json:"skip_cache"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid optimize request")
	}

	req := &OptimizeXPRequest{MaxNodes: raw.MaxNodes, SkipCache: raw.SkipCache}
	if len(raw.TargetValues) == 0 {
		req.TargetValues = map[string]interface{}{}
		return req, nil
	}

	values, err := DecodeTargetValues(bytes.NewReader(raw.TargetValues))
	if err != nil {
		return nil, err
	}
	req.TargetValues = values
	return req, nil
}

// TargetValuesFromStruct converts a protobuf Struct. Struct numbers are
// doubles, so integral values become int64 and anything else is left for the
// validator to reject.
func TargetValuesFromStruct(s *structpb.Struct) map[string]interface{} {
	values := make(map[string]interface{}, len(s.GetFields()))
	for key, v := range s.GetFields() {
		values[key] = fromValue(v)
	}
	return values
}

func fromValue(v *structpb.Value) interface{} {
	if n, ok := v.GetKind().(*structpb.Value_NumberValue); ok {
		f := n.NumberValue
		if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) <= math.MaxInt32 {
			return int64(f)
		}
		return f
	}
	return v.AsInterface()
}

// OptimizeXPRequestFromStruct reads the optimize envelope from a Struct
func OptimizeXPRequestFromStruct(s *structpb.Struct) (*OptimizeXPRequest, error) {
	req := &OptimizeXPRequest{TargetValues: map[string]interface{}{}}
	fields := s.GetFields()

	if v, ok := fields["target_values"]; ok {
		tv := v.GetStructValue()
		if tv == nil {
			return nil, errors.InvalidArgument("target_values must be an object")
		}
		req.TargetValues = TargetValuesFromStruct(tv)
	}
	if v, ok := fields["max_nodes"]; ok {
		n, isInt := fromValue(v).(int64)
		if !isInt || n < 0 {
			return nil, errors.InvalidArgument("max_nodes must be a non-negative integer")
		}
		req.MaxNodes = int(n)
	}
	if v, ok := fields["skip_cache"]; ok {
		b, isBool := v.GetKind().(*structpb.Value_BoolValue)
		if !isBool {
			return nil, errors.InvalidArgument("skip_cache must be a boolean")
		}
		req.SkipCache = b.BoolValue
	}
	return req, nil
}

// ToStruct converts any JSON-encodable document into a Struct
func ToStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	return s, nil
}

// FromStruct decodes a Struct into a JSON-tagged document
func FromStruct(s *structpb.Struct, v interface{}) error {
	raw, err := s.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	if resp, ok := v.(*OptimizeXPResponse); ok && resp.Result != nil {
		SortResult(resp.Result)
	}
	return nil
}

// SortResult restores catalogue row order after a trip through an unordered
// encoding.
func SortResult(r *optimization.Result) {
	var attributes, skills, traits []string
	for _, a := range wrathglory.Attributes() {
		attributes = append(attributes, string(a.ID))
	}
	for _, s := range wrathglory.Skills() {
		skills = append(skills, string(s.ID))
	}
	for _, t := range wrathglory.Traits() {
		traits = append(traits, string(t.ID))
	}

	sortNames(r.Attributes.Names, attributes)
	sortNames(r.Skills.Names, skills)
	sortNames(r.Traits.Names, traits)
}

func sortNames(names, catalogue []string) {
	rank := make(map[string]int, len(catalogue))
	for i, name := range catalogue {
		rank[name] = i
	}
	sort.SliceStable(names, func(i, j int) bool {
		ri, okI := rank[names[i]]
		rj, okJ := rank[names[j]]
		switch {
		case okI && okJ:
			return ri < rj
		case okI != okJ:
			return okI
		default:
			return names[i] < names[j]
		}
	})
}
