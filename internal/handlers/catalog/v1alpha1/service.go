package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name. Requests and
// responses are google.protobuf.Struct messages.
const ServiceName = "catalog.v1alpha1.CatalogService"

// Full method names
const (
	MethodGetLoadStatus     = "/" + ServiceName + "/GetLoadStatus"
	MethodListRecords       = "/" + ServiceName + "/ListRecords"
	MethodGetRecord         = "/" + ServiceName + "/GetRecord"
	MethodGetEvolutionChain = "/" + ServiceName + "/GetEvolutionChain"
	MethodCreateSession     = "/" + ServiceName + "/CreateSession"
	MethodGetSession        = "/" + ServiceName + "/GetSession"
	MethodPickType          = "/" + ServiceName + "/PickType"
	MethodSetSearchTerm     = "/" + ServiceName + "/SetSearchTerm"
	MethodToggleAnimated    = "/" + ServiceName + "/ToggleAnimated"
	MethodDeleteSession     = "/" + ServiceName + "/DeleteSession"
)

// CatalogServiceServer is the server API for the catalog service
type CatalogServiceServer interface {
	GetLoadStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListRecords(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRecord(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetEvolutionChain(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PickType(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetSearchTerm(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ToggleAnimated(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedCatalogServiceServer answers every method with Unimplemented
type UnimplementedCatalogServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedCatalogServiceServer) GetLoadStatus(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("GetLoadStatus")
}
func (UnimplementedCatalogServiceServer) ListRecords(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("ListRecords")
}
func (UnimplementedCatalogServiceServer) GetRecord(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("GetRecord")
}
func (UnimplementedCatalogServiceServer) GetEvolutionChain(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("GetEvolutionChain")
}
func (UnimplementedCatalogServiceServer) CreateSession(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("CreateSession")
}
func (UnimplementedCatalogServiceServer) GetSession(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("GetSession")
}
func (UnimplementedCatalogServiceServer) PickType(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("PickType")
}
func (UnimplementedCatalogServiceServer) SetSearchTerm(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("SetSearchTerm")
}
func (UnimplementedCatalogServiceServer) ToggleAnimated(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("ToggleAnimated")
}
func (UnimplementedCatalogServiceServer) DeleteSession(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("DeleteSession")
}

// RegisterCatalogServiceServer registers srv on s
func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogServiceDesc, srv)
}

type unaryMethod func(srv CatalogServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

// unaryHandler adapts a server method to grpc's handler signature, running
// it through the configured interceptor chain
func unaryHandler(fullMethod string, call unaryMethod) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		server := srv.(CatalogServiceServer)
		if interceptor == nil {
			return call(server, ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(server, ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// CatalogServiceDesc is the grpc.ServiceDesc for the catalog service
var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetLoadStatus", Handler: unaryHandler(MethodGetLoadStatus, CatalogServiceServer.GetLoadStatus)},
		{MethodName: "ListRecords", Handler: unaryHandler(MethodListRecords, CatalogServiceServer.ListRecords)},
		{MethodName: "GetRecord", Handler: unaryHandler(MethodGetRecord, CatalogServiceServer.GetRecord)},
		{MethodName: "GetEvolutionChain", Handler: unaryHandler(MethodGetEvolutionChain, CatalogServiceServer.GetEvolutionChain)},
		{MethodName: "CreateSession", Handler: unaryHandler(MethodCreateSession, CatalogServiceServer.CreateSession)},
		{MethodName: "GetSession", Handler: unaryHandler(MethodGetSession, CatalogServiceServer.GetSession)},
		{MethodName: "PickType", Handler: unaryHandler(MethodPickType, CatalogServiceServer.PickType)},
		{MethodName: "SetSearchTerm", Handler: unaryHandler(MethodSetSearchTerm, CatalogServiceServer.SetSearchTerm)},
		{MethodName: "ToggleAnimated", Handler: unaryHandler(MethodToggleAnimated, CatalogServiceServer.ToggleAnimated)},
		{MethodName: "DeleteSession", Handler: unaryHandler(MethodDeleteSession, CatalogServiceServer.DeleteSession)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catalog/v1alpha1/catalog.proto",
}

// CatalogServiceClient is the client API for the catalog service
type CatalogServiceClient interface {
	Invoke(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type catalogServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCatalogServiceClient wraps a client connection
func NewCatalogServiceClient(cc grpc.ClientConnInterface) CatalogServiceClient {
	return &catalogServiceClient{cc: cc}
}

// Invoke calls one of the Method* full names
func (c *catalogServiceClient) Invoke(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if req == nil {
		req = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
