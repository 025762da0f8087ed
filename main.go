package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/SAmaya29/syncbox/commands"
	"github.com/SAmaya29/syncbox/config"
	"github.com/SAmaya29/syncbox/log"
)

var (
	version = "1.0.0"

	rootCmd = &cobra.Command{
		Use:   "syncbox",
		Short: "syncbox - canonical multi-goroutine synchronization scenarios",
		Long: `syncbox runs three classic synchronization problems over shared memory:
a semaphore-coordinated bounded buffer, a deadlock-free ring of exclusive
resources, and a monitor-style unbounded queue. Scenario events are written
to a log file in the os temp directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of syncbox",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("syncbox version %s\n", version)
		},
	}
)

func init() {
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.BoundedCmd)
	rootCmd.AddCommand(commands.RingCmd)
	rootCmd.AddCommand(commands.QueueCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
	}
}
