package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SAmaya29/syncbox/config"
	"github.com/SAmaya29/syncbox/log"
	"github.com/SAmaya29/syncbox/scenario"
)

// QueueCmd runs the monitor-queue scenario.
var QueueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Run the unbounded monitor-queue scenario",
	Long: `Run producers and consumers against an unbounded FIFO guarded by a mutex
and a condition variable. Producers never block; consumers block while the
queue is empty. Once the producers finish, the queue is closed and the
consumers drain what remains before exiting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Initialize()
		defer log.Close()

		cfg := config.LoadConfig()
		applyWorkloadFlags(cmd, cfg)

		ctx, cancel := runContext()
		defer cancel()

		report, err := scenario.QueueWorkers(ctx, cfg)
		if err != nil {
			return fmt.Errorf("queue scenario failed: %w", err)
		}

		fmt.Printf("Produced %d items, consumed %d in %s\n", report.Produced, report.Consumed, report.Elapsed)
		for c, n := range report.PerConsumer {
			fmt.Printf("  consumer %d took %d items\n", c, n)
		}
		return nil
	},
}

func init() {
	addWorkloadFlags(QueueCmd)
}
