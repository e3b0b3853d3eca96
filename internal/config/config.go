package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const DefaultBridgeEndpoint = "http://127.0.0.1:1248"

// LoggingConfig defines runtime logging behavior.
type LoggingConfig struct {
	Level     string `json:"level"`
	LogToFile bool   `json:"log_to_file"`
}

// BridgeConfig locates the local wallet bridge endpoint. http, ws and ipc
// URLs are accepted; the schemeless form is rejected so connection failures
// surface as bridge errors, not parse ambiguity.
type BridgeConfig struct {
	Endpoint string `json:"endpoint"`
}

// UIConfig stores persistent UI preferences.
type UIConfig struct {
	StartHidden   bool               `json:"start_hidden"`
	Notifications NotificationConfig `json:"notifications"`
}

// NotificationConfig stores desktop notification preferences.
type NotificationConfig struct {
	ConnectionStatus bool `json:"connection_status"`
}

// AppConfig is the root persisted application configuration.
type AppConfig struct {
	Bridge  BridgeConfig  `json:"bridge"`
	Logging LoggingConfig `json:"logging"`
	UI      UIConfig      `json:"ui"`
}

func Default() AppConfig {
	return AppConfig{
		Bridge: BridgeConfig{
			Endpoint: DefaultBridgeEndpoint,
		},
		Logging: LoggingConfig{
			Level:     "info",
			LogToFile: false,
		},
		UI: UIConfig{
			StartHidden: false,
			Notifications: NotificationConfig{
				ConnectionStatus: true,
			},
		},
	}
}

func Load(path string) (AppConfig, error) {
	cfg := Default()
	cleanPath := filepath.Clean(path)
	// #nosec G304 -- path is resolved by app runtime and points to user config dir.
	raw, err := os.ReadFile(cleanPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return AppConfig{}, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(raw, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("decode config json: %w", err)
	}

	cfg.FillMissingDefaults()

	return cfg, nil
}

func (c *AppConfig) FillMissingDefaults() {
	if strings.TrimSpace(c.Bridge.Endpoint) == "" {
		c.Bridge.Endpoint = DefaultBridgeEndpoint
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c AppConfig) Validate() error {
	endpoint := strings.TrimSpace(c.Bridge.Endpoint)
	if endpoint == "" {
		return errors.New("bridge endpoint is required")
	}
	switch {
	case strings.HasPrefix(endpoint, "http://"),
		strings.HasPrefix(endpoint, "https://"),
		strings.HasPrefix(endpoint, "ws://"),
		strings.HasPrefix(endpoint, "wss://"),
		strings.HasSuffix(endpoint, ".ipc"):
		return nil
	default:
		return fmt.Errorf("unsupported bridge endpoint: %s", endpoint)
	}
}

func Save(path string, cfg AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, raw, 0o600); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp config: %w", err)
	}

	return nil
}
