package update

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	DesktopNotifications bool   `yaml:"desktop_notifications"`
	DatabasePath         string `yaml:"database_path"`
	SchedulerBuffer      int    `yaml:"scheduler_buffer"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DesktopNotifications: false,
		DatabasePath:         defaultDatabasePath(),
		SchedulerBuffer:      64,
	}
}

func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "habitd.db"
	}
	return home + "/.habitd/habitd.db"
}

// RuntimeConfigFromFile layers values from a yaml config file over base. A
// missing file leaves base unchanged.
func RuntimeConfigFromFile(base RuntimeConfig, path string) (RuntimeConfig, error) {
	cfg := base
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return base, err
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = base.DatabasePath
	}
	if cfg.SchedulerBuffer <= 0 {
		cfg.SchedulerBuffer = base.SchedulerBuffer
	}
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvBool("HABITD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v := strings.TrimSpace(os.Getenv("HABITD_DATABASE_PATH")); v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := getEnvInt("HABITD_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	return cfg
}

// LoadRuntimeConfig resolves the effective config: defaults, then the config
// file, then env overrides.
func LoadRuntimeConfig(configPath string) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	if configPath != "" {
		loaded, err := RuntimeConfigFromFile(cfg, configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	return RuntimeConfigFromEnv(cfg), nil
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.habitd/config.yaml"
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
