// Package config provides configuration management for skillpack.
// It supports a YAML configuration file, environment variables, and
// sensible defaults.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/drewcray/skillpack/internal/bundle"
	"github.com/drewcray/skillpack/internal/lint"
	"github.com/drewcray/skillpack/internal/model"
	"github.com/drewcray/skillpack/internal/util"
)

// Config represents the complete skillpack configuration.
type Config struct {
	// Platforms configures bundle directories for each host platform.
	Platforms PlatformsConfig `yaml:"platforms"`

	// Lint configures default lint behavior.
	Lint LintConfig `yaml:"lint"`

	// Archive configures where packed bundles and backups are written.
	Archive ArchiveConfig `yaml:"archive"`

	// Output configures display preferences.
	Output OutputConfig `yaml:"output"`
}

// PlatformsConfig holds per-platform configuration.
type PlatformsConfig struct {
	ClaudeCode PlatformConfig `yaml:"claude_code"`
	Cursor     PlatformConfig `yaml:"cursor"`
	Codex      PlatformConfig `yaml:"codex"`
}

// PlatformConfig holds configuration for a single platform.
type PlatformConfig struct {
	// BundlePaths is an ordered list of directories searched for bundles,
	// highest precedence first (repo before user). Paths may use ~ or be
	// relative to the working directory.
	BundlePaths []string `yaml:"bundle_paths,omitempty"`
}

// LintConfig holds lint settings.
type LintConfig struct {
	// Strict upgrades advisory findings to errors.
	Strict bool `yaml:"strict"`
	// MaxDescriptionLen is the longest description accepted without a warning.
	MaxDescriptionLen int `yaml:"max_description_len"`
	// RequireInstallGuide errors when a bundle has no INSTALL.md.
	RequireInstallGuide bool `yaml:"require_install_guide"`
}

// ArchiveConfig holds archive settings.
type ArchiveConfig struct {
	// Location is the directory for packed bundles and overwrite backups.
	Location string `yaml:"location"`
	// KeepBackups is the number of pre-overwrite backups retained per bundle.
	KeepBackups int `yaml:"keep_backups"`
}

// OutputConfig holds display preferences.
type OutputConfig struct {
	// Format is the default output format (text, json).
	Format string `yaml:"format"`
	// Color controls color output (auto, always, never).
	Color string `yaml:"color"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Platforms: PlatformsConfig{
			ClaudeCode: PlatformConfig{
				BundlePaths: []string{
					".claude/skills",   // Repo (relative)
					"~/.claude/skills", // User
				},
			},
			Cursor: PlatformConfig{
				BundlePaths: []string{
					".cursor/skills",
					"~/.cursor/skills",
				},
			},
			Codex: PlatformConfig{
				BundlePaths: []string{
					".codex/skills",
					"~/.codex/skills",
				},
			},
		},
		Lint: LintConfig{
			Strict:              false,
			MaxDescriptionLen:   1024,
			RequireInstallGuide: false,
		},
		Archive: ArchiveConfig{
			Location:    util.ArchiveDir(),
			KeepBackups: 5,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  "auto",
		},
	}
}

// configFileName is the name of the config file.
const configFileName = "config.yaml"

// FilePath returns the path to the config file.
func FilePath() string {
	return filepath.Join(util.ConfigDir(), configFileName)
}

// Exists returns true if a config file exists.
func Exists() bool {
	_, err := os.Stat(FilePath())
	return err == nil
}

// Load loads the configuration from file, merging with defaults.
// If the config file doesn't exist, returns default configuration.
func Load() (*Config, error) {
	cfg := Default()

	// #nosec G304 - configPath is constructed from the trusted config directory
	data, err := os.ReadFile(FilePath())
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvironment()
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// LoadFromPath loads configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	// #nosec G304 - path is provided by caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	return c.SaveToPath(FilePath())
}

// SaveToPath writes the configuration to a specific path.
func (c *Config) SaveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// #nosec G306 - config file should be readable by user
	return os.WriteFile(path, data, 0o644)
}

// applyEnvironment applies environment variable overrides.
// Environment variables follow the pattern SKILLPACK_<SECTION>_<KEY>.
func (c *Config) applyEnvironment() {
	if v := os.Getenv("SKILLPACK_LINT_STRICT"); v != "" {
		c.Lint.Strict = parseBool(v)
	}
	if v := os.Getenv("SKILLPACK_LINT_MAX_DESCRIPTION_LEN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Lint.MaxDescriptionLen = n
		}
	}
	if v := os.Getenv("SKILLPACK_LINT_REQUIRE_INSTALL_GUIDE"); v != "" {
		c.Lint.RequireInstallGuide = parseBool(v)
	}

	if v := os.Getenv("SKILLPACK_ARCHIVE_LOCATION"); v != "" {
		c.Archive.Location = v
	}
	if v := os.Getenv("SKILLPACK_ARCHIVE_KEEP_BACKUPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Archive.KeepBackups = n
		}
	}

	if v := os.Getenv("SKILLPACK_OUTPUT_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("SKILLPACK_OUTPUT_COLOR"); v != "" {
		c.Output.Color = v
	}

	// Platform paths use a colon-separated list.
	if v := os.Getenv("SKILLPACK_CLAUDE_CODE_BUNDLE_PATHS"); v != "" {
		c.Platforms.ClaudeCode.BundlePaths = splitPaths(v)
	}
	if v := os.Getenv("SKILLPACK_CURSOR_BUNDLE_PATHS"); v != "" {
		c.Platforms.Cursor.BundlePaths = splitPaths(v)
	}
	if v := os.Getenv("SKILLPACK_CODEX_BUNDLE_PATHS"); v != "" {
		c.Platforms.Codex.BundlePaths = splitPaths(v)
	}
}

// LintOptions converts the lint section into lint.Options.
func (c *Config) LintOptions() lint.Options {
	opts := lint.DefaultOptions()
	opts.Strict = c.Lint.Strict
	opts.RequireInstallGuide = c.Lint.RequireInstallGuide
	if c.Lint.MaxDescriptionLen > 0 {
		opts.MaxDescriptionLen = c.Lint.MaxDescriptionLen
	}
	return opts
}

// Platform returns the configuration for a single platform.
func (c *Config) Platform(p model.Platform) PlatformConfig {
	switch p {
	case model.ClaudeCode:
		return c.Platforms.ClaudeCode
	case model.Cursor:
		return c.Platforms.Cursor
	case model.Codex:
		return c.Platforms.Codex
	default:
		return PlatformConfig{}
	}
}

// Locations builds discovery locations from the configured platform
// paths. Paths earlier in a platform's list map to higher-precedence
// scopes: the first entry is repo scope, later entries user scope.
func (c *Config) Locations(workDir string) []bundle.Location {
	var locations []bundle.Location
	for _, p := range model.AllPlatforms() {
		pc := c.Platform(p)
		for i, raw := range pc.BundlePaths {
			scope := model.ScopeUser
			if i == 0 {
				scope = model.ScopeRepo
			}
			locations = append(locations, bundle.Location{
				Platform: p,
				Scope:    scope,
				Path:     util.ExpandPath(raw, workDir),
			})
		}
	}
	if len(locations) == 0 {
		// No platform paths configured anywhere; fall back to the
		// standard per-platform directories.
		return bundle.DefaultLocations(workDir)
	}
	return locations
}

// InstallPath returns the directory a bundle should be installed into
// for the given platform and scope.
func (c *Config) InstallPath(p model.Platform, scope model.Scope, workDir string) string {
	pc := c.Platform(p)
	if len(pc.BundlePaths) == 0 {
		return ""
	}
	// Repo scope installs to the first configured path, user scope to the last.
	raw := pc.BundlePaths[len(pc.BundlePaths)-1]
	if scope == model.ScopeRepo {
		raw = pc.BundlePaths[0]
	}
	return util.ExpandPath(raw, workDir)
}

// parseBool parses a boolean from common string representations.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// splitPaths splits a colon-separated path string into individual paths.
// Empty segments are filtered out.
func splitPaths(s string) []string {
	parts := strings.Split(s, ":")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
