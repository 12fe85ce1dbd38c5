// Package server wires the store, its service, the name directory and the
// gRPC/HTTP front ends into one process.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/heysubinoy/remotekv/api/proto"
	"github.com/heysubinoy/remotekv/internal/api"
	"github.com/heysubinoy/remotekv/internal/registry"
	"github.com/heysubinoy/remotekv/internal/store"
	"github.com/heysubinoy/remotekv/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const shutdownTimeout = 5 * time.Second

// Server owns the single store instance for the life of the process.
type Server struct {
	cfg    *config.Config
	logger hclog.Logger

	store   *store.InstrumentedStore
	service *store.Service
	dir     *registry.Directory
	health  *health.Server
	metrics *prometheus.Registry

	grpcServer *grpc.Server
	httpServer *http.Server
}

// New builds a server from cfg. Nothing listens until Serve is called.
func New(cfg *config.Config, logger hclog.Logger) *Server {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	instrumented := store.NewInstrumentedStore(store.NewMemStore(), reg)
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		store:   instrumented,
		service: store.NewService(instrumented, logger.Named("store")),
		dir:     registry.NewDirectory(),
		health:  health.NewServer(),
		metrics: reg,
	}

	s.grpcServer = grpc.NewServer(
		grpc.ForceServerCodec(proto.Codec{}),
		grpc.UnaryInterceptor(api.LoggingInterceptor(logger.Named("rpc"))),
	)
	proto.RegisterKVServiceServer(s.grpcServer, api.NewGRPCServer(s.service))
	proto.RegisterRegistryServer(s.grpcServer, api.NewRegistryServer(s.dir))
	healthpb.RegisterHealthServer(s.grpcServer, s.health)

	if cfg.HTTPAddr != "" {
		mux := http.NewServeMux()
		api.NewServer(s.service).RegisterRoutes(mux)
		mux.Handle("/stats", api.StatsHandler(instrumented, logger.Named("http")))
		mux.Handle("/metrics", api.MetricsHandler(reg))
		s.httpServer = &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	return s
}

// Directory returns the name directory served by this process.
func (s *Server) Directory() *registry.Directory {
	return s.dir
}

// Store returns the instrumented store behind the service.
func (s *Server) Store() *store.InstrumentedStore {
	return s.store
}

// Serve binds the service name, serves gRPC on lis (and HTTP when
// configured) and blocks until ctx is cancelled or a listener fails.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	endpoint := s.advertiseAddr(lis)
	s.dir.Bind(s.cfg.ServiceName, endpoint)
	s.health.SetServingStatus(s.cfg.ServiceName, healthpb.HealthCheckResponse_SERVING)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// ErrServerStopped means shutdown won the race with Serve.
		if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})

	if s.httpServer != nil {
		g.Go(func() error {
			if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http serve: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		s.shutdown()
		return nil
	})

	s.logger.Info("server started",
		"listen", lis.Addr().String(),
		"service", s.cfg.ServiceName,
		"endpoint", endpoint,
		"http", s.cfg.HTTPAddr)

	return g.Wait()
}

func (s *Server) shutdown() {
	s.logger.Info("shutting down")

	s.dir.Unbind(s.cfg.ServiceName)
	s.health.Shutdown()
	s.grpcServer.GracefulStop()

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Warn("http shutdown", "error", err)
		}
	}
}

// advertiseAddr is the endpoint handed out by the directory. Without an
// explicit address it is ":<port>" and clients fill in the host they used.
func (s *Server) advertiseAddr(lis net.Listener) string {
	if s.cfg.AdvertiseAddr != "" {
		return s.cfg.AdvertiseAddr
	}
	if tcp, ok := lis.Addr().(*net.TCPAddr); ok {
		return fmt.Sprintf(":%d", tcp.Port)
	}
	return lis.Addr().String()
}
