package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/courtside/internal/api/request"
	"github.com/mcoot/courtside/internal/api/response"
)

func newSubCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sub <id> <outgoing> <incoming>",
		Short: "Substitute an on-court player",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			outgoing, err := parseNumber(args[1])
			if err != nil {
				return err
			}
			incoming, err := parseNumber(args[2])
			if err != nil {
				return err
			}

			req := request.SubstituteRequest{Outgoing: outgoing, Incoming: incoming}
			var result response.SubstitutionResponse
			if err := client.Post(cmd.Context(), lineupPath(args[0])+"/substitutions", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newLiberoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "libero <id> <libero> <target>",
		Short: "Bring the libero on for a back-row player",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			libero, err := parseNumber(args[1])
			if err != nil {
				return err
			}
			target, err := parseNumber(args[2])
			if err != nil {
				return err
			}

			req := request.LiberoRequest{Libero: libero, Target: target}
			var result response.SubstitutionResponse
			if err := client.Post(cmd.Context(), lineupPath(args[0])+"/libero", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newCandidatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "candidates <id> <number>",
		Short: "List who can replace a player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseNumber(args[1])
			if err != nil {
				return err
			}

			var result response.CandidatesResponse
			path := lineupPath(args[0]) + "/substitutions/candidates?player=" + itoa(number)
			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
