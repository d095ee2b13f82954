package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/courtside/internal/api/request"
	"github.com/mcoot/courtside/internal/api/response"
)

func newCourtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "court",
		Short: "Court placement commands",
	}

	cmd.AddCommand(newCourtPlaceCmd())
	cmd.AddCommand(newCourtMoveCmd())
	cmd.AddCommand(newCourtRemoveCmd())
	cmd.AddCommand(newCourtClearCmd())

	return cmd
}

func newCourtPlaceCmd() *cobra.Command {
	var slot int

	cmd := &cobra.Command{
		Use:   "place <id> <number>",
		Short: "Place a player on court (first free slot unless --slot is given)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseNumber(args[1])
			if err != nil {
				return err
			}

			req := request.PlaceRequest{Number: number}
			if cmd.Flags().Changed("slot") {
				req.Slot = &slot
			}

			var result response.Lineup
			if err := client.Post(cmd.Context(), lineupPath(args[0])+"/court", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&slot, "slot", 0, "Rotation slot 0-5")

	return cmd
}

func newCourtMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <number> <slot>",
		Short: "Move an on-court player to another slot",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseNumber(args[1])
			if err != nil {
				return err
			}
			slot, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid slot %q", args[2])
			}

			var result response.Lineup
			path := fmt.Sprintf("%s/court/%d", lineupPath(args[0]), number)
			if err := client.Patch(cmd.Context(), path, request.MoveRequest{Slot: &slot}, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newCourtRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id> <number>",
		Short: "Take a player off the court",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseNumber(args[1])
			if err != nil {
				return err
			}

			var result response.Lineup
			path := fmt.Sprintf("%s/court/%d", lineupPath(args[0]), number)
			if err := client.Delete(cmd.Context(), path, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newCourtClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <id>",
		Short: "Remove every player from the court",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Lineup
			if err := client.Delete(cmd.Context(), lineupPath(args[0])+"/court", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
