package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/bridge"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/server"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/id"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

const shutdownTimeout = 10 * time.Second

// errCommandFailed marks an invoke whose response has already been printed.
var errCommandFailed = errors.New("command failed")

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errCommandFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "server",
		Short:         "Desktop command bridge: native file dialogs and text file access",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newInvokeCmd(), newCommandsCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var port, host, backend string
	var dev bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the bridge over HTTP and WebSocket IPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// Override with CLI flags
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("dialog") {
				cfg.Dialog.Backend = backend
			}
			if dev {
				cfg.Logging.Development = true
				cfg.Logging.Level = "debug"
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Server port (overrides PORT)")
	cmd.Flags().StringVar(&host, "host", "", "Server host (overrides HOST)")
	cmd.Flags().StringVar(&backend, "dialog", "", "Dialog backend: native, terminal or headless (overrides DIALOG_BACKEND)")
	cmd.Flags().BoolVar(&dev, "dev", false, "Development mode (colored logs, debug level)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errChan
}

func newInvokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invoke <command> [json-args]",
		Short: "Run one command in-process and print the JSON response",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, logger, err := newLocalBridge()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			invocationID := id.NewInvocationID().String()
			callArgs := bridge.Args{}
			if len(args) == 2 {
				if err := sonic.UnmarshalString(args[1], &callArgs); err != nil {
					return fmt.Errorf("invalid json-args: expected a JSON object: %w", err)
				}
				if callArgs == nil {
					callArgs = bridge.Args{}
				}
			}

			resp := types.Success(invocationID, nil)
			data, err := b.Invoke(cmd.Context(), args[0], callArgs)
			if err != nil {
				logger.Debug("Invoke failed", zap.String("cmd", args[0]), zap.Error(err))
				resp = types.Failure(invocationID, err)
			} else {
				resp.Data = data
			}

			if err := printJSON(cmd, resp); err != nil {
				return err
			}
			if !resp.OK {
				return errCommandFailed
			}
			return nil
		},
	}
}

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "Print the command table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, _, err := newLocalBridge()
			if err != nil {
				return err
			}
			return printJSON(cmd, b.Commands())
		},
	}
}

// newLocalBridge builds a bridge from the environment for one-shot commands.
// Logs go to stderr so stdout carries only the JSON result.
func newLocalBridge() (*bridge.Bridge, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger := logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development)
	b, err := server.NewBridge(cfg, logger, nil)
	if err != nil {
		return nil, nil, err
	}
	return b, logger, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
