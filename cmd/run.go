package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stockseed/stockseed/internal/config"
	"github.com/stockseed/stockseed/internal/db"
	"github.com/stockseed/stockseed/internal/schema"
	"github.com/stockseed/stockseed/internal/seed"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Provision the schema and seed the full dataset",
	Long: `Drop and recreate every table, then populate the base entities,
the sparse relation tables, and the role/user accounts. Any failure in
any phase aborts the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		src, err := seed.LoadSource(cfg.Seed.Source)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		conn, err := db.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		color.Cyan("🌱 Provisioning schema...")
		if err := schema.NewProvisioner(conn.Pool).Provision(ctx); err != nil {
			return err
		}

		color.Cyan("🌱 Seeding base entities...")
		if err := seed.NewEntitySeeder(conn.Pool, src).Seed(ctx); err != nil {
			return err
		}

		color.Cyan("🌱 Seeding relations...")
		if err := seed.NewRelationSeeder(conn.Pool, cfg.Seed.ProductLimit).Seed(ctx); err != nil {
			return err
		}

		color.Cyan("🌱 Bootstrapping roles and users...")
		if err := seed.NewIdentityBootstrapper(conn.Pool, src).Seed(ctx); err != nil {
			return err
		}

		color.Green("\n✅ Database provisioned and seeded successfully!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
