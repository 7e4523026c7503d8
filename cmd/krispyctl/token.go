package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kristykoh/krispyledger-web/internal/auth"
	"github.com/kristykoh/krispyledger-web/internal/config"
)

var tokenCmd = &cobra.Command{
	Use:   "token <bridge-name>",
	Short: "Mint a bridge token signed with BRIDGE_SECRET",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.BridgeSecret == "" {
			return errors.New("BRIDGE_SECRET is not set")
		}
		ttl, _ := cmd.Flags().GetDuration("ttl")
		if ttl <= 0 {
			ttl = cfg.BridgeTokenTTL
		}

		token, err := auth.NewJWTManager(cfg.BridgeSecret, ttl).Generate(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime (default BRIDGE_TOKEN_TTL)")
	rootCmd.AddCommand(tokenCmd)
}
