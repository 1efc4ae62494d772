package main

import (
	"fmt"

	"fleetops/cmd"
	"fleetops/internal/adapters/out/postgres/migrations"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate [up|down|status]",
		Short: "Database migration management",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if config.Store.Driver != cmd.StorePostgres {
				return fmt.Errorf("migrations need store driver %q, got %q", cmd.StorePostgres, config.Store.Driver)
			}

			db, err := migrations.Open(config.Database.DSN())
			if err != nil {
				return err
			}
			defer db.Close()

			action := "up"
			if len(args) > 0 {
				action = args[0]
			}

			switch action {
			case "up":
				return migrations.Up(db)
			case "down":
				return migrations.Down(db)
			case "status":
				return migrations.Status(db)
			default:
				return fmt.Errorf("unknown migrate action %q", action)
			}
		},
	})
}
