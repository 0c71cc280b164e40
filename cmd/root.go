package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nodari-ai/sales-engine/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "sales-engine",
	Short: "Automated B2B sales funnel",
	Long:  "Ingests form submissions, researches and scores leads with Claude, places outbound voice calls, and routes hot/warm/nurture follow-up.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is a local development convenience; missing file is fine.
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
