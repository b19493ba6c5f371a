// Package client provides gRPC client commands for the optimizer service
package client

import (
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/xp-optimizer/internal/errors"
	"github.com/KirkDiggler/xp-optimizer/internal/handlers/xp/v1alpha1"
)

type clientOptions struct {
	serverAddr string
	timeout    time.Duration
}

// NewClientCmd is the root command for all client commands
func NewClientCmd() *cobra.Command {
	opts := &clientOptions{}

	cmd := &cobra.Command{
		Use:   "client",
		Short: "Call a running optimizer over gRPC",
		Long:  `Client commands send real gRPC requests to an optimizer server.`,
	}

	cmd.PersistentFlags().StringVar(&opts.serverAddr, "server", "localhost:50051", "gRPC server address")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")

	cmd.AddCommand(newOptimizeCmd(opts))
	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newTargetsCmd(opts))

	return cmd
}

// createOptimizerClient dials the server. Call cleanup when done.
func createOptimizerClient(opts *clientOptions) (v1alpha1.OptimizerServiceClient, func(), error) {
	conn, err := grpc.NewClient(opts.serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to connect to server")
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewOptimizerServiceClient(conn), cleanup, nil
}
