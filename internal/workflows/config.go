package workflows

import (
	"context"
	"fmt"

	"github.com/thecoblack/edtoken/internal/configs"
	kerrors "github.com/thecoblack/edtoken/internal/errors"
	"github.com/thecoblack/edtoken/internal/utils"
)

// ConfigResult contains the effective configuration and where it was read from.
type ConfigResult struct {
	Config *configs.Config
	Path   string

	// FileExists is false when only env and defaults are in effect.
	FileExists bool
}

// ShowConfig returns the effective configuration.
func ShowConfig(ctx context.Context) (*ConfigResult, error) {
	cfg, err := configs.LoadConfig()
	if err != nil {
		return nil, err
	}

	path := configs.ConfigFilePath()
	exists, err := utils.Exists(path)
	if err != nil {
		return nil, err
	}

	return &ConfigResult{Config: cfg, Path: path, FileExists: exists}, nil
}

// InitConfigOptions configures the config init workflow.
type InitConfigOptions struct {
	Force bool
}

// InitConfig writes the default configuration to config.toml.
//
// Returns ErrConfigExists if the file exists and Force is not set.
func InitConfig(ctx context.Context, opts InitConfigOptions) (*ConfigResult, error) {
	path := configs.ConfigFilePath()

	exists, err := utils.Exists(path)
	if err != nil {
		return nil, err
	}
	if exists && !opts.Force {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrConfigExists, path)
	}

	cfg := configs.DefaultConfig()
	if err := configs.SaveConfig(path, cfg); err != nil {
		return nil, err
	}

	return &ConfigResult{Config: cfg, Path: path, FileExists: true}, nil
}
