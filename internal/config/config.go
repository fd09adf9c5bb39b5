package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// UserConfig is the persisted server configuration. Every field can be
// overridden by a BUDGETWISE_* environment variable at runtime.
type UserConfig struct {
	DBName          string `json:"db_name"`
	DataDir         string `json:"data_dir"`
	GenerationURL   string `json:"generation_url"`
	GenerationModel string `json:"generation_model"`
}

const defaultDBName = "budgetwise.db"

var runtimeDataDir string
var runtimePort = 8000

// SetRuntimeDataDir forces the data directory for this process, taking
// precedence over the environment and the config file.
func SetRuntimeDataDir(dir string) {
	runtimeDataDir = dir
}

func SetRuntimePort(port int) {
	if port > 0 {
		runtimePort = port
	}
}

// GetRuntimePort returns the HTTP listen port. BUDGETWISE_PORT wins over
// the value set with SetRuntimePort.
func GetRuntimePort() int {
	if env := os.Getenv("BUDGETWISE_PORT"); env != "" {
		if port, err := strconv.Atoi(env); err == nil && port > 0 {
			return port
		}
	}
	return runtimePort
}

func appConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return "", homeErr
		}
		return filepath.Join(home, ".config", "budgetwise"), nil
	}
	return filepath.Join(configDir, "budgetwise"), nil
}

func appConfigPath() (string, error) {
	dir, err := appConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadUserConfig reads the persisted config, falling back to defaults for
// any missing file or field.
func LoadUserConfig() UserConfig {
	defaults := UserConfig{DBName: defaultDBName}
	configPath, err := appConfigPath()
	if err != nil {
		return defaults
	}
	file, err := os.Open(configPath)
	if err != nil {
		return defaults
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&defaults); err != nil {
		return defaults
	}
	if defaults.DBName == "" {
		defaults.DBName = defaultDBName
	}
	return defaults
}

// SaveUserConfig writes the config to the app config directory.
func SaveUserConfig(cfg UserConfig) error {
	path, err := appConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// GetDataDir resolves the data directory and makes sure it exists. The
// order is: SetRuntimeDataDir, BUDGETWISE_DATA_DIR, the config file, then
// the OS config dir.
func GetDataDir() (string, error) {
	if runtimeDataDir != "" {
		if err := os.MkdirAll(runtimeDataDir, 0o755); err != nil {
			return "", err
		}
		return runtimeDataDir, nil
	}
	if envDir := os.Getenv("BUDGETWISE_DATA_DIR"); envDir != "" {
		if err := os.MkdirAll(envDir, 0o755); err != nil {
			return "", err
		}
		return envDir, nil
	}
	cfg := LoadUserConfig()
	if cfg.DataDir != "" {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return "", err
		}
		return cfg.DataDir, nil
	}
	defaultDir, err := appConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(defaultDir, 0o755); err != nil {
		return "", err
	}
	return defaultDir, nil
}

// GetDBPath resolves the SQLite database path. BUDGETWISE_DB_PATH wins
// over the data dir plus configured name.
func GetDBPath() (string, error) {
	if envPath := os.Getenv("BUDGETWISE_DB_PATH"); envPath != "" {
		return envPath, nil
	}
	cfg := LoadUserConfig()
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	name := cfg.DBName
	if name == "" {
		name = defaultDBName
	}
	return filepath.Join(dataDir, name), nil
}

// GenerationSettings holds the remote text-generation endpoint settings.
type GenerationSettings struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// GetGenerationSettings resolves the generation settings from the
// environment, then the config file. Zero values mean "use the library
// defaults".
func GetGenerationSettings() GenerationSettings {
	cfg := LoadUserConfig()
	settings := GenerationSettings{
		BaseURL: cfg.GenerationURL,
		Model:   cfg.GenerationModel,
	}
	if env := strings.TrimSpace(os.Getenv("BUDGETWISE_GENERATION_URL")); env != "" {
		settings.BaseURL = env
	}
	if env := strings.TrimSpace(os.Getenv("BUDGETWISE_GENERATION_MODEL")); env != "" {
		settings.Model = env
	}
	if env := strings.TrimSpace(os.Getenv("BUDGETWISE_GENERATION_TIMEOUT")); env != "" {
		if d, err := time.ParseDuration(env); err == nil && d > 0 {
			settings.Timeout = d
		} else if secs, err := strconv.Atoi(env); err == nil && secs > 0 {
			settings.Timeout = time.Duration(secs) * time.Second
		}
	}
	return settings
}
