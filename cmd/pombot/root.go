package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/config"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/logger"
)

var (
	cfgFile string
	verbose bool

	cfg *config.Config
	log logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pombot",
	Short: "PomBot - the PomWorkz auto parts assistant",
	Long: `PomBot answers customer questions about the PomWorkz auto parts catalog.
Deterministic rules handle prices, services, contact details and procedures;
anything else goes to a locally hosted language model grounded on the catalog.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if verbose {
			c.Logging.Level = "debug"
		}
		cfg = c
		log = logger.New(c.Logging.Level, c.Logging.Format)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			logger.Sync(log)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: configs/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
