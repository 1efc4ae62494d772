package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fleetops/cmd"

	"github.com/spf13/cobra"
)

var (
	configPath string
	config     cmd.Config
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "fleetops",
	Short:         "Fleet operations backend",
	Long:          `fleetops serves the dispatch dashboard API: orders, shipper assignment, roster, audit logs and inventory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(c *cobra.Command, _ []string) error {
		cfg, err := cmd.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		config = cfg
		logger = cmd.NewLogger(cfg.Log, os.Stderr)
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
