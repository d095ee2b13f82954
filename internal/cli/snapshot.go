package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/courtside/internal/api/response"
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save and restore the court setup",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "save <id>",
		Short: "Save the current court setup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Snapshot
			if err := client.Post(cmd.Context(), lineupPath(args[0])+"/snapshot", nil, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show the saved court setup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Snapshot
			if err := client.Get(cmd.Context(), lineupPath(args[0])+"/snapshot", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "restore <id>",
		Short: "Replace the court with the saved setup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Lineup
			if err := client.Post(cmd.Context(), lineupPath(args[0])+"/snapshot/restore", nil, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	})

	return cmd
}
