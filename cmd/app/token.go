package main

import (
	"fmt"
	"time"

	"fleetops/internal/adapters/in/http/auth"
	"fleetops/internal/core/domain/model/shipper"

	"github.com/spf13/cobra"
)

func init() {
	var (
		id    string
		email string
		role  string
		ttl   time.Duration
	)
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an operator bearer token signed with the configured secret",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			v, err := auth.NewVerifier(config.Auth.JWTSecret, config.Auth.Issuer)
			if err != nil {
				return err
			}

			token, err := v.Issue(auth.Principal{ID: id, Email: email, Role: shipper.ParseRole(role)}, ttl)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
	tokenCmd.Flags().StringVar(&id, "id", "admin", "operator account id")
	tokenCmd.Flags().StringVar(&email, "email", "", "operator email recorded in audit entries")
	tokenCmd.Flags().StringVar(&role, "role", "admin", "operator role (admin, user)")
	tokenCmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")
	rootCmd.AddCommand(tokenCmd)
}
