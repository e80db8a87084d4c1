package grpc_handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The service is described with protobuf well-known types, so no generated code is needed.
const (
	ServiceName = "timeshard.v1.IDService"

	methodNextID  = "/" + ServiceName + "/NextID"
	methodNextIDs = "/" + ServiceName + "/NextIDs"
	methodParseID = "/" + ServiceName + "/ParseID"
	methodGetInfo = "/" + ServiceName + "/GetInfo"
)

// IDServiceServer is the server API for the timeshard.v1.IDService service.
type IDServiceServer interface {
	NextID(context.Context, *emptypb.Empty) (*wrapperspb.UInt64Value, error)
	NextIDs(context.Context, *wrapperspb.UInt32Value) (*structpb.ListValue, error)
	ParseID(context.Context, *wrapperspb.UInt64Value) (*structpb.Struct, error)
	GetInfo(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// RegisterIDServiceServer registers srv on s.
func RegisterIDServiceServer(s grpc.ServiceRegistrar, srv IDServiceServer) {
	s.RegisterService(&IDServiceDesc, srv)
}

// IDServiceDesc is the grpc.ServiceDesc for timeshard.v1.IDService.
var IDServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IDServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "NextID", Handler: nextIDHandler},
		{MethodName: "NextIDs", Handler: nextIDsHandler},
		{MethodName: "ParseID", Handler: parseIDHandler},
		{MethodName: "GetInfo", Handler: getInfoHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "timeshard/v1/id_service.proto",
}

func nextIDHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDServiceServer).NextID(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodNextID}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(IDServiceServer).NextID(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func nextIDsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.UInt32Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDServiceServer).NextIDs(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodNextIDs}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(IDServiceServer).NextIDs(ctx, req.(*wrapperspb.UInt32Value))
	}
	return interceptor(ctx, in, info, handler)
}

func parseIDHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.UInt64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDServiceServer).ParseID(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodParseID}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(IDServiceServer).ParseID(ctx, req.(*wrapperspb.UInt64Value))
	}
	return interceptor(ctx, in, info, handler)
}

func getInfoHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDServiceServer).GetInfo(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetInfo}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(IDServiceServer).GetInfo(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}
