// Package v1alpha1 serves the optimizer over gRPC
package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/xp-optimizer/internal/errors"
	"github.com/KirkDiggler/xp-optimizer/internal/handlers/xp"
	"github.com/KirkDiggler/xp-optimizer/internal/orchestrators/optimizer"
)

// HandlerConfig holds dependencies for the optimizer handler
type HandlerConfig struct {
	OptimizerService optimizer.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.OptimizerService == nil {
		return errors.InvalidArgument("optimizer service is required")
	}
	return nil
}

// Handler implements OptimizerServiceServer
type Handler struct {
	optimizerService optimizer.Service
}

var _ OptimizerServiceServer = (*Handler)(nil)

// NewHandler creates a new optimizer handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{optimizerService: cfg.OptimizerService}, nil
}

// OptimizeXP solves the target values in req
func (h *Handler) OptimizeXP(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := xp.OptimizeXPRequestFromStruct(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.optimizerService.OptimizeXP(ctx, in.Input())
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := xp.ToStruct(xp.NewOptimizeXPResponse(out))
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

// ValidateTargetValues checks the target values in req without solving
func (h *Handler) ValidateTargetValues(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	out, err := h.optimizerService.ValidateTargetValues(ctx, &optimizer.ValidateTargetValuesInput{
		TargetValues: xp.TargetValuesFromStruct(req),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := xp.ToStruct(xp.NewValidateTargetValuesResponse(out))
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

// ListTargetValues describes every accepted target-values key
func (h *Handler) ListTargetValues(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	out, err := h.optimizerService.ListTargetValues(ctx, &optimizer.ListTargetValuesInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := xp.ToStruct(xp.NewListTargetValuesResponse(out))
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}
