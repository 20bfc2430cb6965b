package cmd

import (
	"fmt"
	"time"

	"github.com/midwaife/backend/internal/config"
	"github.com/midwaife/backend/internal/service"
	"github.com/spf13/cobra"
)

func TokenCmd() *cobra.Command {
	var expiry time.Duration

	cmd := &cobra.Command{
		Use:   "token <user_id>",
		Short: "Mint a bearer token for a user (requires JWT_SECRET)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if !cfg.AuthEnabled() {
				return fmt.Errorf("JWT_SECRET is not set")
			}
			if expiry <= 0 {
				expiry = cfg.JWTExpiry
			}

			token, err := service.NewAuthService(cfg.JWTSecret, expiry).GenerateJWT(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().DurationVar(&expiry, "expiry", 0, "token lifetime (default JWT_EXPIRY)")
	return cmd
}
