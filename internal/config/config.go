package config

import (
	"fmt"

	"github.com/nukilabs/jdeob"
	"github.com/spf13/viper"
)

// Config represents the deobfuscator configuration
type Config struct {
	// Pass settings
	RemoveEmptyRanges  bool `mapstructure:"remove_empty_ranges"`  // drop ranges without instructions
	SplitMultipleEntry bool `mapstructure:"split_multiple_entry"` // split ranges with several entries
	DummyHandlers      bool `mapstructure:"dummy_handlers"`       // separate handlers shared by several ranges
	Verify             bool `mapstructure:"verify"`               // validate the graph after every pass

	// Output settings
	Format string `mapstructure:"format"` // yaml, dot
	Output string `mapstructure:"output"` // output file path, stdout if empty
}

// LoadConfig loads configuration from an optional file, environment variables
// and defaults
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	defaults := jdeob.DefaultOptions()
	v.SetDefault("remove_empty_ranges", defaults.RemoveEmptyRanges)
	v.SetDefault("split_multiple_entry", defaults.SplitMultipleEntry)
	v.SetDefault("dummy_handlers", defaults.DummyHandlers)
	v.SetDefault("verify", defaults.Verify)
	v.SetDefault("format", "yaml")
	v.SetDefault("output", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// Read environment variables
	v.SetEnvPrefix("JDEOB")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	switch c.Format {
	case "yaml", "dot":
		return nil
	default:
		return fmt.Errorf("invalid format %q (use yaml or dot)", c.Format)
	}
}

// Options returns the pass options of the configuration
func (c *Config) Options() jdeob.Options {
	return jdeob.Options{
		RemoveEmptyRanges:  c.RemoveEmptyRanges,
		SplitMultipleEntry: c.SplitMultipleEntry,
		DummyHandlers:      c.DummyHandlers,
		Verify:             c.Verify,
	}
}
