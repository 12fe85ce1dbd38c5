// Package client resolves the store's endpoint through the name directory and
// issues synchronous Put/Get/Delete calls against it.
package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/heysubinoy/remotekv/api/proto"
	"github.com/heysubinoy/remotekv/pkg/config"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ErrNotBound is returned by Resolve when the directory has no binding for
// the requested service name.
var ErrNotBound = errors.New("service name not bound")

// Options controls resolution and per-call behaviour.
type Options struct {
	ServiceName string
	CallTimeout time.Duration

	// DialOptions are appended to the defaults (insecure transport).
	DialOptions []grpc.DialOption
}

func (o Options) withDefaults() Options {
	if o.ServiceName == "" {
		o.ServiceName = config.DefaultServiceName
	}
	if o.CallTimeout <= 0 {
		o.CallTimeout = config.DefaultCallTimeout
	}
	return o
}

// Client is a connection to a resolved store endpoint. It is safe for
// concurrent use.
type Client struct {
	conn     *grpc.ClientConn
	kv       proto.KVServiceClient
	endpoint string
	timeout  time.Duration
}

// Resolve looks up opts.ServiceName in the directory at host:port, connects
// to the endpoint it names and confirms the endpoint serves that name.
func Resolve(ctx context.Context, host, port string, opts Options) (*Client, error) {
	opts = opts.withDefaults()
	registryAddr := net.JoinHostPort(host, port)
	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts.DialOptions...)

	// Connect using the passthrough resolver for direct address connection
	regConn, err := grpc.NewClient("passthrough:///"+registryAddr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to registry %s: %w", registryAddr, err)
	}

	lookupCtx, cancel := context.WithTimeout(ctx, opts.CallTimeout)
	resp, err := proto.NewRegistryClient(regConn).Lookup(lookupCtx, &proto.LookupRequest{Name: opts.ServiceName})
	cancel()
	if err != nil {
		regConn.Close()
		return nil, fmt.Errorf("failed to look up %q at %s: %w", opts.ServiceName, registryAddr, err)
	}
	if !resp.Found {
		regConn.Close()
		return nil, fmt.Errorf("%w: %q at %s", ErrNotBound, opts.ServiceName, registryAddr)
	}

	endpoint := completeEndpoint(resp.Endpoint, host)
	conn := regConn
	if endpoint != registryAddr {
		regConn.Close()
		conn, err = grpc.NewClient("passthrough:///"+endpoint, dialOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", endpoint, err)
		}
	}

	if err := checkServing(ctx, conn, opts); err != nil {
		conn.Close()
		return nil, fmt.Errorf("endpoint %s for %q: %w", endpoint, opts.ServiceName, err)
	}

	return &Client{
		conn:     conn,
		kv:       proto.NewKVServiceClient(conn),
		endpoint: endpoint,
		timeout:  opts.CallTimeout,
	}, nil
}

func checkServing(ctx context.Context, conn *grpc.ClientConn, opts Options) error {
	ctx, cancel := context.WithTimeout(ctx, opts.CallTimeout)
	defer cancel()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: opts.ServiceName})
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("health check: status %s", resp.GetStatus())
	}
	return nil
}

// completeEndpoint fills in host when the directory handed out ":port".
func completeEndpoint(endpoint, host string) string {
	if strings.HasPrefix(endpoint, ":") {
		return net.JoinHostPort(host, endpoint[1:])
	}
	return endpoint
}

// Endpoint returns the resolved address of the store.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Put stores value under key, replacing any previous value.
func (c *Client) Put(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := c.kv.Put(ctx, &proto.PutRequest{Key: key, Value: value}); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Get returns the value for key. found is false when the key is absent.
func (c *Client) Get(ctx context.Context, key string) (value string, found bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.kv.Get(ctx, &proto.GetRequest{Key: key})
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return resp.Value, resp.Found, nil
}

// Delete removes key and reports whether it existed.
func (c *Client) Delete(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.kv.Delete(ctx, &proto.DeleteRequest{Key: key})
	if err != nil {
		return false, fmt.Errorf("delete %q: %w", key, err)
	}
	return resp.Removed, nil
}
