package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/tilepath/internal/api/response"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Account and token commands",
	}

	cmd.AddCommand(newAuthRegisterCmd())
	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthMeCmd())
	cmd.AddCommand(newAuthLogoutCmd())

	return cmd
}

func newAuthRegisterCmd() *cobra.Command {
	var name, gamerKey, phone, pass, role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"name":      name,
				"gamer_key": gamerKey,
				"phone":     phone,
				"password":  pass,
				"role":      role,
			}
			var result response.Message

			if err := client.Post("/auth/register", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&gamerKey, "gamer-key", "", "Gamer key (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number (required)")
	cmd.Flags().StringVar(&pass, "password", "", "Password (required)")
	cmd.Flags().StringVar(&role, "role", "player", "Role: boss or player")
	for _, flag := range []string{"name", "gamer-key", "phone", "password"} {
		_ = cmd.MarkFlagRequired(flag)
	}

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var phone, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"phone":    phone,
				"password": pass,
			}
			var result response.Login

			if err := client.Post("/auth/login", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.AccessToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}
			client.SetToken(result.AccessToken)

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "Phone number (required)")
	cmd.Flags().StringVar(&pass, "password", "", "Password (required)")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newAuthMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show who the current token belongs to",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Me

			if err := client.Get("/auth/me", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ClearToken(); err != nil {
				return fmt.Errorf("failed to remove token: %w", err)
			}
			output(cmd).PrintMessage("Logged out")
			return nil
		},
	}
}
