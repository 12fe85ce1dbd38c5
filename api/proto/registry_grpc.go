package proto

import (
	"context"

	"google.golang.org/grpc"
)

const (
	Registry_Lookup_FullMethodName = "/kv.Registry/Lookup"
	Registry_List_FullMethodName   = "/kv.Registry/List"
)

// RegistryClient is the client API for Registry.
type RegistryClient interface {
	Lookup(ctx context.Context, in *LookupRequest, opts ...grpc.CallOption) (*LookupResponse, error)
	List(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListResponse, error)
}

type registryClient struct {
	cc grpc.ClientConnInterface
}

func NewRegistryClient(cc grpc.ClientConnInterface) RegistryClient {
	return &registryClient{cc}
}

func (c *registryClient) Lookup(ctx context.Context, in *LookupRequest, opts ...grpc.CallOption) (*LookupResponse, error) {
	out := new(LookupResponse)
	if err := c.cc.Invoke(ctx, Registry_Lookup_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *registryClient) List(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListResponse, error) {
	out := new(ListResponse)
	if err := c.cc.Invoke(ctx, Registry_List_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// RegistryServer is the server API for Registry.
type RegistryServer interface {
	Lookup(context.Context, *LookupRequest) (*LookupResponse, error)
	List(context.Context, *ListRequest) (*ListResponse, error)
	mustEmbedUnimplementedRegistryServer()
}

type UnimplementedRegistryServer struct{}

func (UnimplementedRegistryServer) Lookup(context.Context, *LookupRequest) (*LookupResponse, error) {
	return nil, unimplemented("Lookup")
}

func (UnimplementedRegistryServer) List(context.Context, *ListRequest) (*ListResponse, error) {
	return nil, unimplemented("List")
}

func (UnimplementedRegistryServer) mustEmbedUnimplementedRegistryServer() {}

func RegisterRegistryServer(s grpc.ServiceRegistrar, srv RegistryServer) {
	s.RegisterService(&Registry_ServiceDesc, srv)
}

func registryLookupHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(LookupRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RegistryServer).Lookup(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Registry_Lookup_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RegistryServer).Lookup(ctx, req.(*LookupRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func registryListHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RegistryServer).List(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Registry_List_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RegistryServer).List(ctx, req.(*ListRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Registry_ServiceDesc is the grpc.ServiceDesc for Registry.
var Registry_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "kv.Registry",
	HandlerType: (*RegistryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Lookup", Handler: registryLookupHandler},
		{MethodName: "List", Handler: registryListHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "kv.proto",
}
