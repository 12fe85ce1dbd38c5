package proto

import (
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"
	gproto "google.golang.org/protobuf/proto"
)

// Codec is the gRPC codec for this package's messages. It keeps the "proto"
// content subtype so generated clients interoperate, and hands generated
// protobuf messages (health checks) to the protobuf runtime.
type Codec struct{}

var _ encoding.Codec = Codec{}

func (Codec) Name() string { return "proto" }

func (Codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case Message:
		b, err := marshalWire(m)
		if err != nil {
			return nil, fmt.Errorf("proto: encode %T: %w", v, err)
		}
		return b, nil
	case gproto.Message:
		return gproto.Marshal(m)
	default:
		return nil, fmt.Errorf("proto: cannot marshal %T", v)
	}
}

func (Codec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case Message:
		if err := m.consumeWire(data); err != nil {
			return fmt.Errorf("proto: decode %T: %w", v, err)
		}
		return nil
	case gproto.Message:
		return gproto.Unmarshal(data, m)
	default:
		return fmt.Errorf("proto: cannot unmarshal into %T", v)
	}
}

// withCodec forces Codec on a call; the default codec only accepts generated
// messages.
func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}
