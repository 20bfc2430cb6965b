package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/midwaife/backend/internal/app"
	"github.com/midwaife/backend/internal/config"
	"github.com/midwaife/backend/internal/db"
	"github.com/midwaife/backend/internal/seed"
	"github.com/spf13/cobra"
)

func SeedCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load foods, milestones and users from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}

			return withDB(func(cfg *config.Config, database *sqlx.DB) error {
				if migrate {
					err := db.RunMigrations(database.DB, cfg.DBDriver)
					if err != nil {
						return err
					}
				}

				a := app.NewWithDB(cfg, database, nil)
				seeder := seed.NewSeeder(a.MealService, a.MilestoneService, a.UserService)

				res, err := seeder.Apply(cmd.Context(), file)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d foods, %d milestones, %d users (%d skipped)\n",
					res.Foods, res.Milestones, res.Users, res.Skipped)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply pending migrations first")
	return cmd
}
