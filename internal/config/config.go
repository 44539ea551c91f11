package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tauraamui/mvextract/pkg/configdef"
	"github.com/tauraamui/xerror"
)

const (
	vendorName     = "tacusci"
	appName        = "mvextract"
	configFileName = "config.json"
)

var fs afero.Fs = afero.NewOsFs()

func DefaultResolver() configdef.Resolver {
	return defaultResolver{}
}

func DefaultCreator() configdef.Creator {
	return defaultResolver{}
}

func DefaultCreateResolver() configdef.CreateResolver {
	return defaultResolver{}
}

type defaultResolver struct{}

func (d defaultResolver) Resolve() (configdef.Values, error) {
	return load()
}

func (d defaultResolver) Create() error {
	return create()
}

func resolveConfigPath() (string, error) {
	configPath := os.Getenv("MVEXTRACT_CONFIG")
	if len(configPath) > 0 {
		return configPath, nil
	}

	configParentDir, err := userConfigDir()
	if err != nil {
		return "", xerror.Errorf("unable to resolve %s location: %w", configFileName, err)
	}

	return filepath.Join(
		configParentDir,
		vendorName,
		appName,
		configFileName), nil
}

var userConfigDir = func() (string, error) {
	return os.UserConfigDir()
}
