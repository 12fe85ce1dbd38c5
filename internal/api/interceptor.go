package api

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// LoggingInterceptor logs every failed unary call with its method, peer and
// status. Successful calls are logged at trace level only; the store service
// already records them.
func LoggingInterceptor(logger hclog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if err != nil {
			st := status.Convert(err)
			logger.Error("call failed",
				"method", info.FullMethod,
				"client", PeerAddr(ctx),
				"code", st.Code().String(),
				"error", st.Message())
			return resp, err
		}
		logger.Trace("call completed", "method", info.FullMethod, "client", PeerAddr(ctx), "elapsed", time.Since(start))
		return resp, nil
	}
}
