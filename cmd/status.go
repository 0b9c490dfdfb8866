package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stockseed/stockseed/internal/config"
	"github.com/stockseed/stockseed/internal/db"
	"github.com/stockseed/stockseed/internal/schema"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show row counts for every provisioned table",
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

		color.Cyan("📊 Table row counts\n")
		for _, table := range schema.TableNames() {
			var count int64
			if err := conn.Pool.QueryRow(ctx, "SELECT COUNT(1) FROM "+table).Scan(&count); err != nil {
				return fmt.Errorf("failed to count %s: %w", table, db.Classify(err))
			}
			fmt.Printf("  %-25s %d\n", table, count)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
