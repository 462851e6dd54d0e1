package maitre

import (
	"fmt"
	"os"

	"github.com/viant/toolbox"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the engine configuration. It
// can be populated from YAML or the environment; the zero-value of every
// nested field inherits its package default.
type Config struct {
	Restaurant RestaurantConfig `json:"restaurant" yaml:"restaurant"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
}

// RestaurantConfig sizes the simulation.
type RestaurantConfig struct {
	// Tables is the fixed table inventory; it never grows at runtime.
	Tables int `json:"tables" yaml:"tables"`
	// Groups is the number of group processes taking part.
	Groups int `json:"groups" yaml:"groups"`
}

// JournalConfig selects the state log sink.
type JournalConfig struct {
	// Vendor is "memory" (default) or "fs".
	Vendor string `json:"vendor" yaml:"vendor"`
	// BaseURL is the directory the fs vendor writes entries under.
	BaseURL string `json:"baseURL" yaml:"baseURL"`
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() *Config {
	return &Config{
		Restaurant: RestaurantConfig{Tables: 2, Groups: 3},
		Journal:    JournalConfig{Vendor: "memory"},
	}
}

// NewConfigFromYAML decodes a configuration document, applies environment
// overrides and validates the result.
func NewConfigFromYAML(data []byte) (*Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	config.ApplyEnv()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides selected settings from the process environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("MAITRE_TABLES"); v != "" {
		c.Restaurant.Tables = toolbox.AsInt(v)
	}
	if v := os.Getenv("MAITRE_GROUPS"); v != "" {
		c.Restaurant.Groups = toolbox.AsInt(v)
	}
	if v := os.Getenv("MAITRE_JOURNAL_VENDOR"); v != "" {
		c.Journal.Vendor = v
	}
	if v := os.Getenv("MAITRE_JOURNAL_BASE_URL"); v != "" {
		c.Journal.BaseURL = v
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Restaurant.Tables <= 0 {
		return fmt.Errorf("restaurant.tables must be > 0")
	}
	if c.Restaurant.Groups <= 0 {
		return fmt.Errorf("restaurant.groups must be > 0")
	}
	switch c.Journal.Vendor {
	case "", "memory":
	case "fs":
		if c.Journal.BaseURL == "" {
			return fmt.Errorf("journal.baseURL is required for the fs journal")
		}
	default:
		return fmt.Errorf("unsupported journal vendor: %s", c.Journal.Vendor)
	}
	return nil
}
