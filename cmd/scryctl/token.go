package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/phrazzld/scry-cardgen/internal/service/auth"
)

func newTokenCmd(env *cliEnv) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("invalid --user-id: %w", err)
			}

			svc, err := auth.NewJWTService(env.cfg.Auth)
			if err != nil {
				return err
			}
			token, err := svc.GenerateToken(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}

			env.log.Info("access token issued",
				"user_id", id.String(),
				"lifetime_minutes", env.cfg.Auth.TokenLifetimeMinutes)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "UUID of the user the token is issued to")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}
