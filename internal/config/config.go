/**
 * Configuration management for the broadlink control daemon/CLI
 * @author: sun977
 * @date: 2025.10.21
 * @description: Loads and validates the application's runtime configuration
 */
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level runtime configuration.
type Config struct {
	App       *AppConfig       `yaml:"app" mapstructure:"app"`
	Log       *LogConfig       `yaml:"log" mapstructure:"log"`
	Network   *NetworkConfig   `yaml:"network" mapstructure:"network"`
	Discovery *DiscoveryConfig `yaml:"discovery" mapstructure:"discovery"`
	Session   *SessionConfig   `yaml:"session" mapstructure:"session"`
}

// AppConfig holds identity/environment metadata.
type AppConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Version     string `yaml:"version" mapstructure:"version"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`
	Timezone    string `yaml:"timezone" mapstructure:"timezone"`
}

// LogConfig controls structured log output.
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	Format     string `yaml:"format" mapstructure:"format"`
	Output     string `yaml:"output" mapstructure:"output"`
	FilePath   string `yaml:"file_path" mapstructure:"file_path"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Caller     bool   `yaml:"caller" mapstructure:"caller"`
}

// NetworkConfig controls the UDP transport used to reach devices.
type NetworkConfig struct {
	ListenAddress     string        `yaml:"listen_address" mapstructure:"listen_address"`           // local bind address, empty port picks an ephemeral one
	BroadcastAddress  string        `yaml:"broadcast_address" mapstructure:"broadcast_address"`     // shown in discovery log output; the probe itself always goes to 255.255.255.255
	DiscoveryPort     int           `yaml:"discovery_port" mapstructure:"discovery_port"`           // validated only; discovery always probes port 80
	PerAttemptTimeout time.Duration `yaml:"per_attempt_timeout" mapstructure:"per_attempt_timeout"` // validated only; the transport's per-read timeout is fixed at one second
	OverallTimeout    time.Duration `yaml:"overall_timeout" mapstructure:"overall_timeout"`         // validated only; command deadlines come from session.command_timeout
}

// DiscoveryConfig controls broadcast discovery behavior.
type DiscoveryConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`             // how long to collect discovery replies
	SubdevicePage int           `yaml:"subdevice_page" mapstructure:"subdevice_page"` // validated only; the CLI pages hub subdevices by device.MaxHubSubdevices
}

// SessionConfig controls the device authentication handshake.
type SessionConfig struct {
	LocalDeviceLabel string        `yaml:"local_device_label" mapstructure:"local_device_label"` // identifier string sent during auth()
	CommandTimeout   time.Duration `yaml:"command_timeout" mapstructure:"command_timeout"`        // default deadline for a single device command
}

// LoadConfig loads configuration from an optional explicit path, falling
// back to the usual search locations and environment variables.
func LoadConfig(configPath ...string) (*Config, error) {
	var path string
	if len(configPath) > 0 && configPath[0] != "" {
		path = configPath[0]
	}

	loader := NewConfigLoader(path, "BROADLINK")
	config, err := loader.LoadConfig()
	if err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// loadConfigFileAuto searches the well-known config locations.
func loadConfigFileAuto(config *Config) error {
	configPaths := []string{
		"config.yaml",
		"config.yml",
		"configs/config.yaml",
		"configs/config.yml",
		"/etc/broadlink/config.yaml",
		"/etc/broadlink/config.yml",
	}

	if configPath := os.Getenv("BROADLINK_CONFIG_PATH"); configPath != "" {
		configPaths = append([]string{configPath}, configPaths...)
	}

	var configFile string
	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			configFile = path
			break
		}
	}

	if configFile == "" {
		return nil
	}

	return loadConfigFile(config, configFile)
}

// loadFromEnv overlays environment variables onto an already-defaulted
// config.
func loadFromEnv(config *Config) error {
	if config.App == nil {
		config.App = &AppConfig{}
	}
	if debug := os.Getenv("BROADLINK_DEBUG"); debug != "" {
		config.App.Debug = strings.ToLower(debug) == "true"
	}

	if config.Log == nil {
		config.Log = &LogConfig{}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}
	if filePath := os.Getenv("LOG_FILE_PATH"); filePath != "" {
		config.Log.FilePath = filePath
	}

	if config.Network == nil {
		config.Network = &NetworkConfig{}
	}
	if addr := os.Getenv("BROADLINK_BROADCAST_ADDRESS"); addr != "" {
		config.Network.BroadcastAddress = addr
	}
	if port := os.Getenv("BROADLINK_DISCOVERY_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Network.DiscoveryPort = p
		}
	}

	if config.Session == nil {
		config.Session = &SessionConfig{}
	}
	if label := os.Getenv("BROADLINK_DEVICE_LABEL"); label != "" {
		config.Session.LocalDeviceLabel = label
	}

	return nil
}

// setDefaults fills unset fields with sensible defaults.
func setDefaults(config *Config) {
	if config.App == nil {
		config.App = &AppConfig{}
	}
	if config.App.Name == "" {
		config.App.Name = "broadlinkctl"
	}
	if config.App.Version == "" {
		config.App.Version = "1.0.0"
	}
	if config.App.Environment == "" {
		config.App.Environment = "development"
	}
	if config.App.Timezone == "" {
		config.App.Timezone = "UTC"
	}

	if config.Log == nil {
		config.Log = &LogConfig{}
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "json"
	}
	if config.Log.Output == "" {
		config.Log.Output = "stdout"
	}
	if config.Log.FilePath == "" {
		config.Log.FilePath = "logs/broadlinkctl.log"
	}
	if config.Log.MaxSize == 0 {
		config.Log.MaxSize = 100
	}
	if config.Log.MaxBackups == 0 {
		config.Log.MaxBackups = 10
	}
	if config.Log.MaxAge == 0 {
		config.Log.MaxAge = 30
	}

	if config.Network == nil {
		config.Network = &NetworkConfig{}
	}
	if config.Network.ListenAddress == "" {
		config.Network.ListenAddress = "0.0.0.0:0"
	}
	if config.Network.BroadcastAddress == "" {
		config.Network.BroadcastAddress = "255.255.255.255"
	}
	if config.Network.DiscoveryPort == 0 {
		config.Network.DiscoveryPort = 80
	}
	if config.Network.PerAttemptTimeout == 0 {
		config.Network.PerAttemptTimeout = time.Second
	}
	if config.Network.OverallTimeout == 0 {
		config.Network.OverallTimeout = 10 * time.Second
	}

	if config.Discovery == nil {
		config.Discovery = &DiscoveryConfig{}
	}
	if config.Discovery.Timeout == 0 {
		config.Discovery.Timeout = 3 * time.Second
	}
	if config.Discovery.SubdevicePage == 0 {
		config.Discovery.SubdevicePage = 5
	}

	if config.Session == nil {
		config.Session = &SessionConfig{}
	}
	if config.Session.LocalDeviceLabel == "" {
		config.Session.LocalDeviceLabel = "Test  1"
	}
	if config.Session.CommandTimeout == 0 {
		config.Session.CommandTimeout = 10 * time.Second
	}
}

// validateConfig checks the fields that loading can't sanity-check on its
// own.
func validateConfig(config *Config) error {
	if config.Network.DiscoveryPort <= 0 || config.Network.DiscoveryPort > 65535 {
		return fmt.Errorf("invalid discovery port: %d", config.Network.DiscoveryPort)
	}
	if config.Network.OverallTimeout < config.Network.PerAttemptTimeout {
		return fmt.Errorf("overall_timeout (%s) must be >= per_attempt_timeout (%s)",
			config.Network.OverallTimeout, config.Network.PerAttemptTimeout)
	}
	if config.Discovery.SubdevicePage <= 0 {
		return fmt.Errorf("invalid subdevice page size: %d", config.Discovery.SubdevicePage)
	}
	return nil
}

// loadConfigFile parses a YAML or JSON config file into cfg.
func loadConfigFile(cfg *Config, configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	ext := filepath.Ext(configPath)
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file format: %s", ext)
	}

	return nil
}

// GetConfig returns the process-wide config, loading it on first use.
var globalConfig *Config

func GetConfig() *Config {
	if globalConfig == nil {
		var err error
		globalConfig, err = LoadConfig("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load config: %v", err))
		}
	}
	return globalConfig
}

// ReloadConfig reloads the process-wide config from its original source.
func ReloadConfig() error {
	newConfig, err := LoadConfig("")
	if err != nil {
		return err
	}

	globalConfig = newConfig
	return nil
}
