package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/courtside/internal/api/request"
	"github.com/mcoot/courtside/internal/api/response"
)

func newLineupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lineup",
		Short: "Lineup management commands",
	}

	cmd.AddCommand(newLineupCreateCmd())
	cmd.AddCommand(newLineupListCmd())
	cmd.AddCommand(newLineupGetCmd())
	cmd.AddCommand(newLineupDeleteCmd())

	return cmd
}

func newLineupCreateCmd() *cobra.Command {
	var name, policy, rosterSpec string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new lineup",
		Long: `Create a new lineup. Without --roster the default seven-player squad is used.

A roster is a comma-separated list of number:name entries; append :libero to
mark the libero, e.g. "1:Alice,2:Bob,7:Libby:libero".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.CreateLineupRequest{
				Name:             name,
				SubstitutionSlot: policy,
			}
			if rosterSpec != "" {
				roster, err := parseRoster(rosterSpec)
				if err != nil {
					return err
				}
				req.Roster = roster
			}

			var result response.Lineup
			if err := client.Post(cmd.Context(), "/api/v1/lineups", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Lineup name")
	cmd.Flags().StringVar(&policy, "policy", "", "Substitution slot policy: random (default) or preserve")
	cmd.Flags().StringVar(&rosterSpec, "roster", "", "Custom roster (number:name[:libero],...)")

	return cmd
}

func newLineupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your lineups",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.LineupListResponse

			if err := client.Get(cmd.Context(), "/api/v1/lineups", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newLineupGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a lineup with its court and log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Lineup

			if err := client.Get(cmd.Context(), lineupPath(args[0]), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newLineupDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a lineup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), lineupPath(args[0]), nil); err != nil {
				return err
			}

			output(cmd).PrintMessage("Deleted lineup " + args[0])
			return nil
		},
	}
}

// parseRoster parses "1:Alice,2:Bob,7:Libby:libero"
func parseRoster(spec string) ([]request.RosterPlayer, error) {
	var roster []request.RosterPlayer
	for _, entry := range strings.Split(spec, ",") {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("invalid roster entry %q: want number:name[:libero]", entry)
		}

		number, err := parseNumber(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid roster entry %q: %w", entry, err)
		}

		p := request.RosterPlayer{Number: number, Name: parts[1]}
		if len(parts) == 3 {
			if !strings.EqualFold(parts[2], "libero") {
				return nil, fmt.Errorf("invalid roster entry %q: third field must be \"libero\"", entry)
			}
			p.Libero = true
		}
		roster = append(roster, p)
	}
	return roster, nil
}

// parseNumber accepts "7" or "#7"
func parseNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil {
		return 0, fmt.Errorf("invalid player number %q", s)
	}
	return n, nil
}

func lineupPath(id string) string {
	return "/api/v1/lineups/" + id
}
