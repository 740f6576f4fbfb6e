package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fruteroclub/para-wallet-migration-mcp/internal/config"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	// when
	cfg := config.Default()

	// then
	assert.Equal(t, []string{"privy", "reown", "web3modal"}, cfg.DetectionOrder)
	assert.Equal(t, "latest", cfg.TargetVersion)
	require.NoError(t, config.Validate(cfg))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("should fail for unknown detection order entry", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := config.Default()
		cfg.DetectionOrder = []string{"privy", "metamask"}

		// when
		err := config.Validate(cfg)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown strategy")
		assert.Contains(t, err.Error(), "metamask")
	})

	t.Run("should fail for unknown strategy section", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := config.Default()
		cfg.Strategies = map[string]config.StrategyConfig{
			"rainbowkit": {EstimatedSeconds: 60},
		}

		// when
		err := config.Validate(cfg)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rainbowkit")
	})

	t.Run("should fail for negative estimate", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := config.Default()
		cfg.Strategies = map[string]config.StrategyConfig{
			"privy": {EstimatedSeconds: -5},
		}

		// when
		err := config.Validate(cfg)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must not be negative")
	})

	t.Run("should pass with valid configuration", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := config.Default()
		cfg.DetectionOrder = []string{"web3modal", "privy"}
		cfg.Strategies = map[string]config.StrategyConfig{
			"privy": {EstimatedSeconds: 300},
		}

		// when
		err := config.Validate(cfg)

		// then
		require.NoError(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("should load valid config file", func(t *testing.T) {
		t.Parallel()

		// given
		tmpDir := t.TempDir()
		cfgFile := filepath.Join(tmpDir, "para-migrate.yaml")
		content := `
detection_order:
  - web3modal
  - privy
target_version: "1.14.0"
scanner:
  entry_points:
    - "src/root.tsx"
  skip_dirs:
    - "storybook-static"
strategies:
  privy:
    estimated_seconds: 300
`
		require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0o600))

		// when
		cfg, err := config.Load(cfgFile)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"web3modal", "privy"}, cfg.DetectionOrder)
		assert.Equal(t, "1.14.0", cfg.TargetVersion)
		assert.Equal(t, []string{"src/root.tsx"}, cfg.Scanner.EntryPoints)
		assert.Equal(t, []string{"storybook-static"}, cfg.Scanner.SkipDirs)
		assert.Equal(t, 300, cfg.Strategies["privy"].EstimatedSeconds)
	})

	t.Run("should fill defaults for unset fields", func(t *testing.T) {
		t.Parallel()

		// given
		tmpDir := t.TempDir()
		cfgFile := filepath.Join(tmpDir, "para-migrate.yaml")
		require.NoError(t, os.WriteFile(cfgFile, []byte("scanner: {}"), 0o600))

		// when
		cfg, err := config.Load(cfgFile)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"privy", "reown", "web3modal"}, cfg.DetectionOrder)
		assert.Equal(t, "latest", cfg.TargetVersion)
	})

	t.Run("should fail for nonexistent config file", func(t *testing.T) {
		t.Parallel()

		// when
		cfg, err := config.Load("/tmp/nonexistent_para_migrate_xyz.yaml")

		// then
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("should fail for invalid YAML", func(t *testing.T) {
		t.Parallel()

		// given
		tmpDir := t.TempDir()
		cfgFile := filepath.Join(tmpDir, "bad.yaml")
		require.NoError(t, os.WriteFile(cfgFile, []byte("{{{{invalid yaml"), 0o600))

		// when
		cfg, err := config.Load(cfgFile)

		// then
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("should fail validation for unknown strategy", func(t *testing.T) {
		t.Parallel()

		// given
		tmpDir := t.TempDir()
		cfgFile := filepath.Join(tmpDir, "bad-order.yaml")
		require.NoError(t, os.WriteFile(cfgFile, []byte("detection_order: [dynamic]"), 0o600))

		// when
		cfg, err := config.Load(cfgFile)

		// then
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "unknown strategy")
	})
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("should return defaults when nothing is found", func(t *testing.T) {
		// given
		t.Chdir(t.TempDir())

		// when
		cfg, err := config.LoadOrDefault("")

		// then
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("should load an explicit path", func(t *testing.T) {
		// given
		tmpDir := t.TempDir()
		cfgFile := filepath.Join(tmpDir, "custom.yaml")
		require.NoError(t, os.WriteFile(cfgFile, []byte(`target_version: "2.0.0"`), 0o600))

		// when
		cfg, err := config.LoadOrDefault(cfgFile)

		// then
		require.NoError(t, err)
		assert.Equal(t, "2.0.0", cfg.TargetVersion)
	})

	t.Run("should fail for an explicit path that does not exist", func(t *testing.T) {
		// when
		_, err := config.LoadOrDefault("/tmp/nonexistent_para_migrate_xyz.yaml")

		// then
		require.Error(t, err)
	})

	t.Run("should pick up a file from the working directory", func(t *testing.T) {
		// given
		tmpDir := t.TempDir()
		t.Chdir(tmpDir)
		require.NoError(t, os.WriteFile(
			filepath.Join(tmpDir, ".para-migrate.yaml"),
			[]byte(`target_version: "1.9.1"`), 0o600))

		// when
		cfg, err := config.LoadOrDefault("")

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.9.1", cfg.TargetVersion)
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Run("should return error when no config file exists", func(t *testing.T) {
		// given
		t.Chdir(t.TempDir())

		// when
		path, err := config.FindConfigFile()

		// then
		require.Error(t, err)
		assert.Empty(t, path)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("should find para-migrate.yaml in current directory", func(t *testing.T) {
		// given
		tmpDir := t.TempDir()
		t.Chdir(tmpDir)
		require.NoError(t, os.WriteFile(
			filepath.Join(tmpDir, "para-migrate.yaml"),
			[]byte("target_version: latest"), 0o600))

		// when
		path, err := config.FindConfigFile()

		// then
		require.NoError(t, err)
		assert.Equal(t, "para-migrate.yaml", path)
	})

	t.Run("should prefer the hidden file", func(t *testing.T) {
		// given
		tmpDir := t.TempDir()
		t.Chdir(tmpDir)
		require.NoError(t, os.WriteFile(
			filepath.Join(tmpDir, ".para-migrate.yaml"),
			[]byte("target_version: latest"), 0o600))
		require.NoError(t, os.WriteFile(
			filepath.Join(tmpDir, "para-migrate.yaml"),
			[]byte("target_version: latest"), 0o600))

		// when
		path, err := config.FindConfigFile()

		// then
		require.NoError(t, err)
		assert.Equal(t, ".para-migrate.yaml", path)
	})
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should build registry in configured order", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := config.Default()
		cfg.DetectionOrder = []string{"web3modal", "reown", "privy"}

		// when
		registry, err := cfg.Registry()

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"web3modal", "reown", "privy"}, registry.Names())
	})

	t.Run("should apply estimate overrides", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := config.Default()
		cfg.Strategies = map[string]config.StrategyConfig{
			"privy": {EstimatedSeconds: 90},
		}

		// when
		registry, err := cfg.Registry()

		// then
		require.NoError(t, err)
		privy, ok := registry.Get("privy")
		require.True(t, ok)
		assert.Equal(t, 90*time.Second, privy.EstimatedDuration())
		reown, ok := registry.Get("reown")
		require.True(t, ok)
		assert.Equal(t, 15*time.Minute, reown.EstimatedDuration())
	})
}
