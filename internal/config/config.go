package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/strategy"
)

// Config is the top-level configuration for para-migrate.
type Config struct {
	// DetectionOrder sets the priority in which strategies claim a project
	// that carries fingerprints for more than one provider.
	DetectionOrder []string `yaml:"detection_order"`
	// TargetVersion is the @getpara/react-sdk version written into
	// package.json.
	TargetVersion string                    `yaml:"target_version"`
	Scanner       ScannerConfig             `yaml:"scanner"`
	Strategies    map[string]StrategyConfig `yaml:"strategies"`
}

// ScannerConfig adjusts project discovery.
type ScannerConfig struct {
	// EntryPoints overrides the relative paths probed as application entry
	// points.
	EntryPoints []string `yaml:"entry_points"`
	// SkipDirs adds directory names the scanner ignores, on top of the
	// built-in set (node_modules, dist, build, ...).
	SkipDirs []string `yaml:"skip_dirs"`
}

// StrategyConfig holds per-strategy settings.
type StrategyConfig struct {
	// EstimatedSeconds overrides the duration estimate reported on plans.
	EstimatedSeconds int `yaml:"estimated_seconds"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DetectionOrder: strategy.BuiltinNames(),
		TargetVersion:  strategy.DefaultTargetVersion,
	}
}

// Load reads and parses a configuration file, filling defaults for
// anything left unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := Default()
	if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}
	if cfg.TargetVersion == "" {
		cfg.TargetVersion = strategy.DefaultTargetVersion
	}
	if len(cfg.DetectionOrder) == 0 {
		cfg.DetectionOrder = strategy.BuiltinNames()
	}

	if validateErr := Validate(cfg); validateErr != nil {
		return nil, validateErr
	}
	return cfg, nil
}

// LoadOrDefault loads the given file when a path is set, otherwise probes
// the default locations. A missing implicit file is not an error; the
// defaults apply.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	found, err := FindConfigFile()
	if err != nil {
		return Default(), nil
	}
	return Load(found)
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".para-migrate.yaml",
		".para-migrate.yml",
		"para-migrate.yaml",
		"para-migrate.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// Validate checks the configuration against the known strategy names.
func Validate(cfg *Config) error {
	known := make(map[string]bool)
	for _, name := range strategy.BuiltinNames() {
		known[name] = true
	}

	for i, name := range cfg.DetectionOrder {
		if !known[name] {
			return fmt.Errorf("detection_order[%d]: unknown strategy %q", i, name)
		}
	}
	for name, sc := range cfg.Strategies {
		if !known[name] {
			return fmt.Errorf("strategies.%s: unknown strategy", name)
		}
		if sc.EstimatedSeconds < 0 {
			return fmt.Errorf("strategies.%s.estimated_seconds must not be negative", name)
		}
	}
	return nil
}

// Registry builds the strategy registry this configuration describes:
// the built-in strategies with any overridden estimates, in the
// configured detection order.
func (c *Config) Registry() (*strategy.Registry, error) {
	r := strategy.NewRegistry()
	r.Register(strategy.NewPrivyStrategy(c.TargetVersion, c.estimate("privy")))
	r.Register(strategy.NewReownStrategy(c.TargetVersion, c.estimate("reown")))
	r.Register(strategy.NewWeb3ModalStrategy(c.TargetVersion, c.estimate("web3modal")))

	if len(c.DetectionOrder) > 0 {
		if err := r.SetOrder(c.DetectionOrder); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (c *Config) estimate(name string) time.Duration {
	if sc, ok := c.Strategies[name]; ok && sc.EstimatedSeconds > 0 {
		return time.Duration(sc.EstimatedSeconds) * time.Second
	}
	return 0
}
