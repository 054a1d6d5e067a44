package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSignUpCmd() *cobra.Command {
	var name, pass string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return authenticate(cmd, "/api/signup", name, pass)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newSignInCmd() *cobra.Command {
	var name, pass string

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in to an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return authenticate(cmd, "/api/signin", name, pass)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newLoginCmd() *cobra.Command {
	var name, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Create an account on first use, with a random name if none is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			return authenticate(cmd, "/api/login", name, pass)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name")
	cmd.Flags().StringVar(&pass, "pass", "", "Password")

	return cmd
}

func authenticate(cmd *cobra.Command, path, name, pass string) error {
	req := map[string]string{
		"name":     name,
		"password": pass,
	}
	var result AccountResult

	if err := client.Post(path, req, &result); err != nil {
		return err
	}

	cfg.Session = Session{
		UserID: result.ID,
		Name:   result.Name,
		Token:  result.Token,
	}
	if err := cfg.SaveSession(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	NewOutput(cfg.Output, cmd.OutOrStdout()).Print(&result)
	return nil
}
