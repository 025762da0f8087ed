// Package commands holds the cobra commands that run the demonstration
// scenarios. Flags override the values loaded from the config file; only
// flags the user actually set are applied.
package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/SAmaya29/syncbox/config"
)

var (
	producersFlag int
	consumersFlag int
	itemsFlag     int
	minDelayFlag  int
	maxDelayFlag  int
	timeoutFlag   time.Duration
)

func addWorkloadFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&producersFlag, "producers", 0, "Number of producer goroutines (overrides config)")
	cmd.Flags().IntVar(&consumersFlag, "consumers", 0, "Number of consumer goroutines (overrides config)")
	cmd.Flags().IntVar(&itemsFlag, "items", 0, "Items emitted per producer (overrides config)")
	addCommonFlags(cmd)
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&minDelayFlag, "min-delay", 0, "Minimum simulated work delay in ms (overrides config)")
	cmd.Flags().IntVar(&maxDelayFlag, "max-delay", 0, "Maximum simulated work delay in ms (overrides config)")
	cmd.Flags().DurationVar(&timeoutFlag, "timeout", time.Minute, "Abort the run after this long")
}

func applyWorkloadFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("producers") {
		cfg.ProducerCount = producersFlag
	}
	if cmd.Flags().Changed("consumers") {
		cfg.ConsumerCount = consumersFlag
	}
	if cmd.Flags().Changed("items") {
		cfg.ItemsPerProducer = itemsFlag
	}
	applyCommonFlags(cmd, cfg)
}

func applyCommonFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("min-delay") {
		cfg.MinDelayMs = minDelayFlag
	}
	if cmd.Flags().Changed("max-delay") {
		cfg.MaxDelayMs = maxDelayFlag
	}
}

func runContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeoutFlag)
}
