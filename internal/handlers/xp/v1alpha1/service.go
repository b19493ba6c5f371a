package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "wrathglory.xp.v1alpha1.OptimizerService"

// Full method names
const (
	OptimizeXPFullMethodName           = "/" + ServiceName + "/OptimizeXP"
	ValidateTargetValuesFullMethodName = "/" + ServiceName + "/ValidateTargetValues"
	ListTargetValuesFullMethodName     = "/" + ServiceName + "/ListTargetValues"
)

// OptimizerServiceServer is the server API for the optimizer service.
// Messages are google.protobuf.Struct documents described in package xp.
type OptimizerServiceServer interface {
	OptimizeXP(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ValidateTargetValues(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListTargetValues(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// RegisterOptimizerServiceServer registers srv with s
func RegisterOptimizerServiceServer(s grpc.ServiceRegistrar, srv OptimizerServiceServer) {
	s.RegisterService(&OptimizerServiceDesc, srv)
}

func optimizeXPHandler(
	srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor,
) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OptimizerServiceServer).OptimizeXP(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: OptimizeXPFullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OptimizerServiceServer).OptimizeXP(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func validateTargetValuesHandler(
	srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor,
) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OptimizerServiceServer).ValidateTargetValues(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ValidateTargetValuesFullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OptimizerServiceServer).ValidateTargetValues(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listTargetValuesHandler(
	srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor,
) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OptimizerServiceServer).ListTargetValues(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListTargetValuesFullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OptimizerServiceServer).ListTargetValues(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// OptimizerServiceDesc describes the optimizer service for grpc.Server
var OptimizerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OptimizerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "OptimizeXP", Handler: optimizeXPHandler},
		{MethodName: "ValidateTargetValues", Handler: validateTargetValuesHandler},
		{MethodName: "ListTargetValues", Handler: listTargetValuesHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "wrathglory/xp/v1alpha1/optimizer.proto",
}

// OptimizerServiceClient is the client API for the optimizer service
type OptimizerServiceClient interface {
	OptimizeXP(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ValidateTargetValues(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListTargetValues(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type optimizerServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewOptimizerServiceClient creates a client over cc
func NewOptimizerServiceClient(cc grpc.ClientConnInterface) OptimizerServiceClient {
	return &optimizerServiceClient{cc: cc}
}

func (c *optimizerServiceClient) OptimizeXP(
	ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, OptimizeXPFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *optimizerServiceClient) ValidateTargetValues(
	ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ValidateTargetValuesFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *optimizerServiceClient) ListTargetValues(
	ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ListTargetValuesFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
