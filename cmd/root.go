package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/influencer-matcher/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "influencer-matcher",
	Short: "Verify influencer product assignments against collaboration history",
	Long:  "Loads collaboration exports (CSV, XLSX, Notion), builds a name-to-product history, and checks proposed influencer-product assignments against it.",
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
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
