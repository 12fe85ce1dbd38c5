package api

import (
	"context"

	"github.com/heysubinoy/remotekv/api/proto"
	"github.com/heysubinoy/remotekv/internal/registry"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RegistryServer exposes a registry.Directory over gRPC.
type RegistryServer struct {
	proto.UnimplementedRegistryServer
	Directory *registry.Directory
}

func NewRegistryServer(dir *registry.Directory) *RegistryServer {
	return &RegistryServer{
		Directory: dir,
	}
}

// Lookup resolves a logical name. An unbound name is reported with
// Found=false rather than an error.
func (s *RegistryServer) Lookup(ctx context.Context, req *proto.LookupRequest) (*proto.LookupResponse, error) {
	if req.Name == "" {
		return nil, status.Error(codes.InvalidArgument, "name is required")
	}

	e, ok := s.Directory.Lookup(req.Name)
	if !ok {
		return &proto.LookupResponse{}, nil
	}
	return &proto.LookupResponse{
		Endpoint: e.Endpoint,
		Found:    true,
	}, nil
}

// List returns every bound name.
func (s *RegistryServer) List(ctx context.Context, _ *proto.ListRequest) (*proto.ListResponse, error) {
	return &proto.ListResponse{
		Names: s.Directory.Names(),
	}, nil
}
