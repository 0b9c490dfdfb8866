package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stockseed/stockseed/internal/config"
	"github.com/stockseed/stockseed/internal/db"
	"github.com/stockseed/stockseed/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run read-only demonstration queries over the seeded schema",
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

		return report.New(conn.Pool).Run(ctx, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
