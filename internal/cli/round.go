package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"videopoker-server/pkg/poker"
	"videopoker-server/pkg/videopoker"
)

var errNoSession = errors.New("not signed in, run signup, signin, or login first")

func requireSession() error {
	if cfg.Session.UserID == "" {
		return errNoSession
	}

	return nil
}

// roundID returns the flag value, or the last round started
func roundID(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}

	if cfg.Session.RoundID == "" {
		return "", errors.New("no round, run start first or pass --round")
	}

	return cfg.Session.RoundID, nil
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show your wallet and the pools",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}

			var result videopoker.Status
			if err := client.Get("/api/status/"+cfg.Session.UserID, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(&result)
			return nil
		},
	}
}

func newStartCmd() *cobra.Command {
	var ante int64

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Ante and deal a new hand",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}

			req := map[string]any{
				"user_id": cfg.Session.UserID,
				"ante":    ante,
			}
			var result videopoker.Started

			if err := client.Post("/api/start", req, &result); err != nil {
				return err
			}

			cfg.Session.RoundID = result.RoundID
			if err := cfg.SaveSession(); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(&result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&ante, "ante", 10, "Ante")

	return cmd
}

func newDiscardCmd() *cobra.Command {
	var round string

	cmd := &cobra.Command{
		Use:   "discard [position...]",
		Short: "Pay half the ante per card to replace cards by position (0-4)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}

			id, err := roundID(round)
			if err != nil {
				return err
			}

			indices := make([]int, len(args))
			for i, arg := range args {
				if indices[i], err = strconv.Atoi(arg); err != nil {
					return fmt.Errorf("invalid position %q", arg)
				}
			}

			req := map[string]any{
				"user_id":         cfg.Session.UserID,
				"round_id":        id,
				"discard_indices": indices,
			}
			var result videopoker.Discarded

			if err := client.Post("/api/discard", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(&result)
			return nil
		},
	}

	cmd.Flags().StringVar(&round, "round", "", "Round ID (default: the last round started)")

	return cmd
}

func newRevealCmd() *cobra.Command {
	var round string

	cmd := &cobra.Command{
		Use:   "reveal",
		Short: "Reveal the hand and collect any payout",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}

			id, err := roundID(round)
			if err != nil {
				return err
			}

			req := map[string]any{
				"user_id":  cfg.Session.UserID,
				"round_id": id,
			}
			var result videopoker.Revealed

			if err := client.Post("/api/reveal", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(&result)
			return nil
		},
	}

	cmd.Flags().StringVar(&round, "round", "", "Round ID (default: the last round started)")

	return cmd
}

func newPayTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paytable",
		Short: "Show the pay table",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []poker.PayTableRow

			if err := client.Get("/api/paytable", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
