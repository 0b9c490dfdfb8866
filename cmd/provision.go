package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stockseed/stockseed/internal/config"
	"github.com/stockseed/stockseed/internal/db"
	"github.com/stockseed/stockseed/internal/schema"
)

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Drop and recreate the schema without seeding data",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := cmd.Context()
		conn, err := db.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := schema.NewProvisioner(conn.Pool).Provision(ctx); err != nil {
			return err
		}

		color.Green("✅ Schema provisioned")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(provisionCmd)
}
