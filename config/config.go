package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/masmgr/gitwork/internal/aggregation"
	"github.com/masmgr/gitwork/internal/discovery"
	"github.com/masmgr/gitwork/internal/git"
	"github.com/masmgr/gitwork/internal/output"
	"github.com/masmgr/gitwork/internal/window"
)

// FileName is the configuration file looked up in the working and home
// directories.
const FileName = ".gitwork.json"

// Config is the root configuration structure.
type Config struct {
	Scan   ScanConfig   `json:"scan"`
	Window WindowConfig `json:"window"`
	Output OutputConfig `json:"output"`
	Git    GitConfig    `json:"git"`
}

// ScanConfig holds repository discovery options.
type ScanConfig struct {
	MaxDepth int      `json:"maxDepth"` // Default: 3
	Exclude  []string `json:"exclude"`  // doublestar patterns relative to the base directory
	Workers  int      `json:"workers"`  // 0 means one per CPU
}

// WindowConfig holds the default time window.
type WindowConfig struct {
	Days int `json:"days"` // Default: 7
}

// OutputConfig holds presentation options.
type OutputConfig struct {
	Limit      int    `json:"limit"`      // Default: 50, 0 or less shows everything
	Format     string `json:"format"`     // console, raw, json, csv, markdown
	TimeLayout string `json:"timeLayout"` // Go reference-time layout
}

// GitConfig holds history reading options.
type GitConfig struct {
	Backend string `json:"backend"` // go-git or git-cli
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			MaxDepth: discovery.DefaultMaxDepth,
			Exclude:  []string{},
			Workers:  0,
		},
		Window: WindowConfig{
			Days: window.DefaultDays,
		},
		Output: OutputConfig{
			Limit:      aggregation.DefaultLimit,
			Format:     string(output.FormatConsole),
			TimeLayout: output.DefaultTimeLayout,
		},
		Git: GitConfig{
			Backend: string(git.BackendGoGit),
		},
	}
}

// Validate reports values no run could use.
func (c *Config) Validate() error {
	if c.Scan.MaxDepth < 0 {
		return fmt.Errorf("scan.maxDepth must not be negative, got %d", c.Scan.MaxDepth)
	}
	if c.Scan.Workers < 0 {
		return fmt.Errorf("scan.workers must not be negative, got %d", c.Scan.Workers)
	}
	if c.Window.Days < 0 {
		return fmt.Errorf("window.days must not be negative, got %d", c.Window.Days)
	}
	return nil
}

// LoadConfig loads configuration from a file, merging with defaults.
// An empty path searches the working directory, then the home directory.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		candidates := []string{FileName}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, FileName))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, FileName))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}
