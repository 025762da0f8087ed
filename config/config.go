package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SAmaya29/syncbox/log"
)

const ConfigFileName = "config.json"

var (
	ErrInvalidCapacity = errors.New("capacity must be positive")
	ErrInvalidCounts   = errors.New("producer, consumer, and item counts must be positive")
	ErrInvalidAgents   = errors.New("agent count must be at least 2")
	ErrInvalidCycles   = errors.New("cycles per agent must be positive")
	ErrInvalidDelays   = errors.New("delay bounds must satisfy 0 <= min <= max")
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".syncbox"), nil
}

// Config holds the scenario parameters. Flags on the command layer override
// whatever is loaded from disk.
type Config struct {
	// Capacity is the bounded channel's slot count.
	Capacity int `json:"capacity"`
	// ProducerCount is the number of producer goroutines.
	ProducerCount int `json:"producer_count"`
	// ConsumerCount is the number of consumer goroutines.
	ConsumerCount int `json:"consumer_count"`
	// ItemsPerProducer drives total throughput and the termination condition.
	ItemsPerProducer int `json:"items_per_producer"`
	// AgentCount is the number of agents (and resources) in the ring.
	AgentCount int `json:"agent_count"`
	// CyclesPerAgent is how many acquire/release rounds each agent runs.
	CyclesPerAgent int `json:"cycles_per_agent"`
	// MinDelayMs and MaxDelayMs bound the simulated think/work delays.
	MinDelayMs int `json:"min_delay_ms"`
	MaxDelayMs int `json:"max_delay_ms"`
}

// DefaultConfig returns the default scenario parameters.
func DefaultConfig() *Config {
	return &Config{
		Capacity:         3,
		ProducerCount:    2,
		ConsumerCount:    2,
		ItemsPerProducer: 4,
		AgentCount:       5,
		CyclesPerAgent:   2,
		MinDelayMs:       10,
		MaxDelayMs:       50,
	}
}

// Validate reports the first invalid parameter. Invalid configuration is a
// construction-time error; nothing starts running with a bad value.
func (c *Config) Validate() error {
	if c.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	if c.ProducerCount <= 0 || c.ConsumerCount <= 0 || c.ItemsPerProducer <= 0 {
		return ErrInvalidCounts
	}
	if c.AgentCount < 2 {
		return ErrInvalidAgents
	}
	if c.CyclesPerAgent <= 0 {
		return ErrInvalidCycles
	}
	if c.MinDelayMs < 0 || c.MaxDelayMs < c.MinDelayMs {
		return ErrInvalidDelays
	}
	return nil
}

// LoadConfig loads the configuration from disk. If it cannot be done, we return the default configuration.
func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		log.ErrorLog.Printf("failed to parse config file: %v", err)
		return DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		log.WarningLog.Printf("config file is invalid (%v), using defaults", err)
		return DefaultConfig()
	}

	return &config
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return atomicWriteFile(configPath, data, 0644)
}

// SaveConfig exports the saveConfig function for use by other packages
func SaveConfig(config *Config) error {
	return saveConfig(config)
}
