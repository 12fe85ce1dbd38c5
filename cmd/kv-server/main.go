package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/heysubinoy/remotekv/internal/logging"
	"github.com/heysubinoy/remotekv/internal/server"
	"github.com/heysubinoy/remotekv/pkg/config"
	"github.com/spf13/cobra"
)

func main() {
	// Argument errors are printed by cobra; later failures are logged.
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath  string
		httpAddr    string
		serviceName string
	)

	cmd := &cobra.Command{
		Use:   "kv-server <port>",
		Short: "Serve the key-value store and its name directory on <port>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			port, err := parsePort(args[0])
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true

			logger := logging.New("kv-server", cmd.OutOrStdout(), config.DefaultLogLevel)

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				logger.Error("invalid configuration", "error", err)
				return err
			}
			logger.SetLevel(hclog.LevelFromString(cfg.LogLevel))
			if cmd.Flags().Changed("http-addr") {
				cfg.HTTPAddr = httpAddr
			}
			if cmd.Flags().Changed("name") {
				cfg.ServiceName = serviceName
			}

			lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
			if err != nil {
				logger.Error("failed to listen", "port", port, "error", err)
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := server.New(cfg, logger).Serve(ctx, lis); err != nil {
				logger.Error("server exception", "error", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().StringVar(&httpAddr, "http-addr", "", "address for the HTTP API and metrics (disabled when empty)")
	cmd.Flags().StringVar(&serviceName, "name", config.DefaultServiceName, "logical name to bind the store under")
	return cmd
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("invalid port %q", s)
	}
	return port, nil
}
