package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SAmaya29/syncbox/config"
	"github.com/SAmaya29/syncbox/log"
	"github.com/SAmaya29/syncbox/scenario"
)

var capacityFlag int

// BoundedCmd runs the bounded-buffer producer/consumer scenario.
var BoundedCmd = &cobra.Command{
	Use:   "bounded",
	Short: "Run the bounded-buffer producer/consumer scenario",
	Long: `Run producers and consumers against a fixed-capacity circular buffer
coordinated by two counting semaphores and a mutex. Producers block when the
buffer is full, consumers block when it is empty, and the run ends once every
produced item has been consumed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Initialize()
		defer log.Close()

		cfg := config.LoadConfig()
		applyWorkloadFlags(cmd, cfg)
		if cmd.Flags().Changed("capacity") {
			cfg.Capacity = capacityFlag
		}

		ctx, cancel := runContext()
		defer cancel()

		report, err := scenario.ProducerConsumer(ctx, cfg)
		if err != nil {
			return fmt.Errorf("bounded scenario failed: %w", err)
		}

		fmt.Printf("Produced %d items, consumed %d in %s\n", report.Produced, report.Consumed, report.Elapsed)
		for c, n := range report.PerConsumer {
			fmt.Printf("  consumer %d took %d items\n", c, n)
		}
		return nil
	},
}

func init() {
	BoundedCmd.Flags().IntVar(&capacityFlag, "capacity", 0, "Buffer capacity (overrides config)")
	addWorkloadFlags(BoundedCmd)
}
