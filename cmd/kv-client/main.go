package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/heysubinoy/remotekv/internal/client"
	"github.com/heysubinoy/remotekv/internal/logging"
	"github.com/heysubinoy/remotekv/internal/shell"
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
		serviceName string
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "kv-client <host> <port>",
		Short: "Interactive client for a remote key-value store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			host, port := args[0], args[1]
			if p, err := strconv.Atoi(port); err != nil || p < 1 || p > 65535 {
				return fmt.Errorf("invalid port %q", port)
			}
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true

			logger := logging.New("", cmd.OutOrStdout(), config.DefaultLogLevel)

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				logger.Error("invalid configuration", "error", err)
				return err
			}
			logger.SetLevel(hclog.LevelFromString(cfg.LogLevel))
			if cmd.Flags().Changed("name") {
				cfg.ServiceName = serviceName
			}
			if cmd.Flags().Changed("timeout") {
				cfg.CallTimeout = timeout
			}

			// Interrupts terminate the process directly; the shell blocks on stdin.
			ctx := context.Background()

			c, err := client.Resolve(ctx, host, port, client.Options{
				ServiceName: cfg.ServiceName,
				CallTimeout: cfg.CallTimeout,
			})
			if err != nil {
				logger.Error("client exception", "error", err)
				return err
			}
			defer c.Close()
			logger.Info("connected to server", "endpoint", c.Endpoint(), "service", cfg.ServiceName)

			if err := shell.New(c, cmd.InOrStdin(), cmd.OutOrStdout(), logger).Run(ctx); err != nil {
				logger.Error("reading commands", "error", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().StringVar(&serviceName, "name", config.DefaultServiceName, "logical name of the store to resolve")
	cmd.Flags().DurationVar(&timeout, "timeout", config.DefaultCallTimeout, "per-call timeout")
	return cmd
}
