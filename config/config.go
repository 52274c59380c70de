package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Convert ConvertConfig `yaml:"convert"`
	Derive  DeriveConfig  `yaml:"derive"`
	Watch   WatchConfig   `yaml:"watch"`
}

// SourceConfig locates the input images
type SourceConfig struct {
	Dir  string `yaml:"dir"`
	Logo string `yaml:"logo"`
}

// ConvertConfig controls bulk conversion of source images to .ico
type ConvertConfig struct {
	Extension string `yaml:"extension"`
	IcoSize   int    `yaml:"ico_size"`
	Overwrite string `yaml:"overwrite"`
}

// DeriveConfig controls the assets derived from the logo
type DeriveConfig struct {
	Overwrite      string  `yaml:"overwrite"`
	Previews       bool    `yaml:"previews"`
	FaviconSizes   []int   `yaml:"favicon_sizes"`
	AppleTouchSize int     `yaml:"apple_touch_size"`
	IcoSizes       []int   `yaml:"ico_sizes"`
	JPEGQuality    int     `yaml:"jpeg_quality"`
	WebPQuality    float32 `yaml:"webp_quality"`
	Icns           bool    `yaml:"icns"`
}

type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms"`
}

// Default returns the built-in configuration. The tool is fully usable
// without a config file; every value below can be overridden from YAML.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Dir:  ".",
			Logo: "logo.png",
		},
		Convert: ConvertConfig{
			Extension: ".webp",
			IcoSize:   64,
			Overwrite: "skip",
		},
		Derive: DeriveConfig{
			Overwrite:      "always",
			Previews:       true,
			FaviconSizes:   []int{16, 32},
			AppleTouchSize: 180,
			IcoSizes:       []int{16, 32, 48, 64},
			JPEGQuality:    95,
			WebPQuality:    90,
		},
		Watch: WatchConfig{
			DebounceMs: 500,
		},
	}
}

// Load reads and parses the configuration file. Values not present in the
// file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values make sense
func (c *Config) Validate() error {
	if c.Source.Dir == "" {
		return fmt.Errorf("source.dir is required")
	}
	if c.Source.Logo == "" {
		return fmt.Errorf("source.logo is required")
	}
	if !strings.HasPrefix(c.Convert.Extension, ".") {
		return fmt.Errorf("convert.extension must start with a dot, got %q", c.Convert.Extension)
	}
	if c.Convert.IcoSize <= 0 {
		return fmt.Errorf("convert.ico_size must be positive, got %d", c.Convert.IcoSize)
	}
	if err := validatePolicy("convert.overwrite", c.Convert.Overwrite); err != nil {
		return err
	}
	if err := validatePolicy("derive.overwrite", c.Derive.Overwrite); err != nil {
		return err
	}
	if len(c.Derive.FaviconSizes) == 0 {
		return fmt.Errorf("derive.favicon_sizes must not be empty")
	}
	for _, size := range c.Derive.FaviconSizes {
		if size <= 0 {
			return fmt.Errorf("derive.favicon_sizes entries must be positive, got %d", size)
		}
	}
	if c.Derive.AppleTouchSize <= 0 {
		return fmt.Errorf("derive.apple_touch_size must be positive, got %d", c.Derive.AppleTouchSize)
	}
	if len(c.Derive.IcoSizes) == 0 {
		return fmt.Errorf("derive.ico_sizes must not be empty")
	}
	for _, size := range c.Derive.IcoSizes {
		if size <= 0 {
			return fmt.Errorf("derive.ico_sizes entries must be positive, got %d", size)
		}
	}
	if c.Derive.JPEGQuality < 1 || c.Derive.JPEGQuality > 100 {
		return fmt.Errorf("derive.jpeg_quality must be 1-100, got %d", c.Derive.JPEGQuality)
	}
	if c.Derive.WebPQuality < 1 || c.Derive.WebPQuality > 100 {
		return fmt.Errorf("derive.webp_quality must be 1-100, got %v", c.Derive.WebPQuality)
	}
	if c.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative, got %d", c.Watch.DebounceMs)
	}
	return nil
}

func validatePolicy(field, value string) error {
	switch value {
	case "skip", "always":
		return nil
	default:
		return fmt.Errorf("%s must be 'skip' or 'always', got %q", field, value)
	}
}
