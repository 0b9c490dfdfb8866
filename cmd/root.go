package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.2.0"
)

var rootCmd = &cobra.Command{
	Use:   "stockseed",
	Short: "Deterministic schema provisioning and seeding for the supply-chain database",
	Long: `
stockseed rebuilds the supply-chain schema (countries, suppliers,
products, clients, warehouses, users) from scratch and fills it with a
deterministic dataset: repeated runs against a fresh database produce
identical data.

Provisioning is destructive. Every run drops and recreates all tables;
never point it at a database you care about.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			cmd.Printf("stockseed version %s\n", Version)
			return nil
		}
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./stockseed.config.json)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("stockseed.config")
	}

	viper.AutomaticEnv()

	viper.ReadInConfig()
}
