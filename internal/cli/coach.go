package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/courtside/internal/api/response"
)

func newCoachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coach",
		Short: "Coach account commands",
	}

	cmd.AddCommand(newCoachGuestCmd())
	cmd.AddCommand(newCoachRegisterCmd())
	cmd.AddCommand(newCoachLoginCmd())
	cmd.AddCommand(newCoachClaimCmd())
	cmd.AddCommand(newCoachMeCmd())

	return cmd
}

func newCoachGuestCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "guest",
		Short: "Sign in as a guest coach",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"display_name": name}
			return authenticate(cmd, "/api/v1/coaches/guest", req)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (default: server default)")

	return cmd
}

func newCoachRegisterCmd() *cobra.Command {
	var name, user, pass string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new coach account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" || pass == "" {
				return fmt.Errorf("--user and --pass are required")
			}

			req := map[string]string{
				"display_name": name,
				"username":     user,
				"password":     pass,
			}
			return authenticate(cmd, "/api/v1/coaches/register", req)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (default: username)")
	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newCoachClaimCmd() *cobra.Command {
	var name, user, pass string

	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Turn the current guest into an account, keeping its lineups",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"display_name": name,
				"username":     user,
				"password":     pass,
			}
			return authenticate(cmd, "/api/v1/coaches/me/claim", req)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New display name (default: keep the guest's)")
	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newCoachLoginCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" || pass == "" {
				return fmt.Errorf("--user and --pass are required")
			}

			req := map[string]string{
				"username": user,
				"password": pass,
			}
			return authenticate(cmd, "/api/v1/coaches/login", req)
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newCoachMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show current coach info",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Coach

			if err := client.Get(cmd.Context(), "/api/v1/coaches/me", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

// authenticate posts credentials, stores the returned token and prints the coach
func authenticate(cmd *cobra.Command, path string, req map[string]string) error {
	var result response.AuthResponse

	if err := client.Post(cmd.Context(), path, req, &result); err != nil {
		return err
	}

	if err := cfg.SaveToken(result.SessionToken); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	client.SetToken(result.SessionToken)

	output(cmd).Print(result)
	return nil
}
