package api

import (
	"context"

	"github.com/heysubinoy/remotekv/api/proto"
	"github.com/heysubinoy/remotekv/internal/store"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// GRPCServer implements the proto.KVServiceServer interface.
// It exposes a store.Service over gRPC, naming each caller by its peer address.
type GRPCServer struct {
	proto.UnimplementedKVServiceServer
	Service *store.Service
}

// NewGRPCServer creates a new gRPC server with the given service.
func NewGRPCServer(svc *store.Service) *GRPCServer {
	return &GRPCServer{
		Service: svc,
	}
}

// Put stores a key-value pair.
func (s *GRPCServer) Put(ctx context.Context, req *proto.PutRequest) (*proto.PutResponse, error) {
	if req.Key == "" {
		return nil, status.Error(codes.InvalidArgument, "key is required")
	}

	if err := s.Service.Put(PeerAddr(ctx), req.Key, req.Value); err != nil {
		return nil, status.Error(codes.Internal, "failed to put key")
	}

	return &proto.PutResponse{
		Success: true,
	}, nil
}

// Get retrieves a value by key.
func (s *GRPCServer) Get(ctx context.Context, req *proto.GetRequest) (*proto.GetResponse, error) {
	if req.Key == "" {
		return nil, status.Error(codes.InvalidArgument, "key is required")
	}

	value, found := s.Service.Get(PeerAddr(ctx), req.Key)
	return &proto.GetResponse{
		Value: value,
		Found: found,
	}, nil
}

// Delete removes a key from the store.
func (s *GRPCServer) Delete(ctx context.Context, req *proto.DeleteRequest) (*proto.DeleteResponse, error) {
	if req.Key == "" {
		return nil, status.Error(codes.InvalidArgument, "key is required")
	}

	removed, err := s.Service.Delete(PeerAddr(ctx), req.Key)
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to delete key")
	}

	return &proto.DeleteResponse{
		Removed: removed,
	}, nil
}

// PeerAddr returns the remote address of the gRPC caller in ctx, or "" if
// the transport did not record one.
func PeerAddr(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return ""
	}
	return p.Addr.String()
}
