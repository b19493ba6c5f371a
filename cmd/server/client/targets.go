package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/KirkDiggler/xp-optimizer/internal/errors"
	"github.com/KirkDiggler/xp-optimizer/internal/handlers/xp"
)

func newTargetsCmd(clientOpts *clientOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the target values the server accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, cleanup, err := createOptimizerClient(clientOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithTimeout(cmd.Context(), clientOpts.timeout)
			defer cancel()

			respStruct, err := client.ListTargetValues(ctx, &emptypb.Empty{})
			if err != nil {
				return errors.FromGRPCError(err)
			}

			var resp xp.ListTargetValuesResponse
			if err := xp.FromStruct(respStruct, &resp); err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), resp.AsText())
			return err
		},
	}
}
