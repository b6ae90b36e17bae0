package configs

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"

	kerrors "github.com/thecoblack/edtoken/internal/errors"
	"github.com/thecoblack/edtoken/internal/utils"
)

// Config holds the effective settings. Each field can come from the
// environment, from config.toml, or from the defaults, in that priority.
type Config struct {
	ProfilesPath string `toml:"profiles_path" env:"EDTOKEN_PROFILES" validate:"required"`
	CacheDir     string `toml:"cache_dir" env:"EDTOKEN_CACHE_DIR" validate:"required"`
	Shell        string `toml:"shell" env:"EDTOKEN_SHELL" validate:"required"`
	AuditLog     bool   `toml:"audit_log" env:"EDTOKEN_AUDIT_LOG"`
	AuditPath    string `toml:"audit_path" env:"EDTOKEN_AUDIT_PATH" validate:"required_if=AuditLog true"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() *Config {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	return &Config{
		ProfilesPath: filepath.Join(UserEdtokenSettings.DataDir, "user_data.json"),
		CacheDir:     UserEdtokenSettings.CacheDir,
		Shell:        shell,
		AuditPath:    filepath.Join(UserEdtokenSettings.DataDir, "audit.jsonl"),
	}
}

// CachePath returns where the encrypted original of a wallet file is kept
// while the wallet is open. The name is prefixed with a hash of the absolute
// path, so files sharing a basename get separate slots.
func (c *Config) CachePath(file string) string {
	abs, err := filepath.Abs(file)
	if err != nil {
		abs = filepath.Clean(file)
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(c.CacheDir, hex.EncodeToString(sum[:])[:16]+"-"+filepath.Base(abs))
}

// LoadConfig builds the effective configuration from the environment, the
// config file at ConfigFilePath, and the defaults.
func LoadConfig() (*Config, error) {
	return newConfigBuilder().
		withEnv().
		withFile(ConfigFilePath()).
		withDefaults().
		build()
}

// SaveConfig writes cfg to path as TOML.
func SaveConfig(path string, cfg *Config) error {
	if err := SaveTOML(path, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// Validate checks the struct tags and that paths are usable.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrInvalidConfig, err)
	}
	if filepath.Base(c.ProfilesPath) == "." || filepath.Base(c.ProfilesPath) == string(filepath.Separator) {
		return fmt.Errorf("%w: profiles_path %q is not a file", kerrors.ErrInvalidConfig, c.ProfilesPath)
	}
	return nil
}

type configBuilder struct {
	configs []*Config
	// overrides run after the merge. mergo treats false as unset, so a bool
	// explicitly set in the environment is applied here instead.
	overrides []func(*Config)
	err       error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*Config, 0, 3),
	}
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &Config{}
	if err := env.Parse(envCfg); err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("error getting env configs: %w", err))
		return b
	}

	if _, ok := os.LookupEnv("EDTOKEN_AUDIT_LOG"); ok {
		b.overrides = append(b.overrides, func(c *Config) { c.AuditLog = envCfg.AuditLog })
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFile(path string) *configBuilder {
	fileCfg := &Config{}
	if err := LoadTOML(path, fileCfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			b.err = errors.Join(b.err, fmt.Errorf("failed to load config file: %w", err))
		}
		return b
	}

	b.configs = append(b.configs, fileCfg)
	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, DefaultConfig())
	return b
}

// build merges the collected configs. Earlier sources win: mergo only fills
// fields that are still zero.
func (b *configBuilder) build() (*Config, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	config := new(Config)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}
	for _, override := range b.overrides {
		override(config)
	}

	for _, p := range []*string{&config.ProfilesPath, &config.CacheDir, &config.AuditPath} {
		expanded, err := utils.ExpandHome(*p)
		if err != nil {
			return nil, err
		}
		*p = expanded
	}

	return config, config.Validate()
}
