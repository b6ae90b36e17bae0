package configs

import (
	"log"
	"os"
	"path/filepath"

	"github.com/thecoblack/edtoken/internal/utils"
)

type UserSettings struct {
	ConfigDir string
	DataDir   string
	CacheDir  string
	Username  string
	Hostname  string
}

var UserEdtokenSettings *UserSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(homeDir, ".config")
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = filepath.Join(homeDir, ".cache")
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	// A missing username only degrades audit entries.
	username, _ := utils.GetUsername()
	hostname, _ := utils.GetHostname()

	UserEdtokenSettings = &UserSettings{
		ConfigDir: filepath.Join(configDir, "edtoken"),
		DataDir:   filepath.Join(dataDir, "edtoken"),
		CacheDir:  filepath.Join(cacheDir, "edtoken", "wallets"),
		Username:  username,
		Hostname:  hostname,
	}
}

// ConfigFilePath returns the location of config.toml.
func ConfigFilePath() string {
	return filepath.Join(UserEdtokenSettings.ConfigDir, "config.toml")
}
