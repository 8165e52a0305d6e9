package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/compscan/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "compscan",
	Short: "Local competitor intelligence for contractors",
	Long:  "Geocodes a business address, discovers nearby competitors via Google Places, mines their reviews for pricing, services and sentiment, and produces a ranked market report.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
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
