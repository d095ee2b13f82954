package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/courtside/internal/api/request"
	"github.com/mcoot/courtside/internal/api/response"
)

func newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <number> <name>",
		Short: "Rename a roster player",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseNumber(args[1])
			if err != nil {
				return err
			}

			req := request.RenameRequest{Name: strings.Join(args[2:], " ")}
			var result response.RenameResponse
			if err := client.Patch(cmd.Context(), playerPath(args[0], number), req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newActionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "action <id> <number> <sub|name> [value...]",
		Short: "Run a free-text command against a player",
		Long: `Run a free-text command against a player, as typed in the editor prompt.

  action <id> 1 sub 3       substitute #1 for #3 (or bring the libero on)
  action <id> 1 name Ally   rename #1`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseNumber(args[1])
			if err != nil {
				return err
			}

			req := request.ActionRequest{
				Action: args[2],
				Value:  strings.Join(args[3:], " "),
			}
			var result response.ActionResponse
			err = client.Post(cmd.Context(), playerPath(args[0], number)+"/actions", req, &result)
			if errors.Is(err, ErrNoContent) {
				output(cmd).PrintMessage("Nothing to do")
				return nil
			}
			if err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func playerPath(id string, number int) string {
	return fmt.Sprintf("%s/players/%d", lineupPath(id), number)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
