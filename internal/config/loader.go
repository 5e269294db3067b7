package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ConfigLoader 配置加载器
type ConfigLoader struct {
	configPath string
	envPrefix  string
	viper      *viper.Viper
}

// NewConfigLoader 创建配置加载器
func NewConfigLoader(configPath, envPrefix string) *ConfigLoader {
	if envPrefix == "" {
		envPrefix = "BROADLINK"
	}
	
	return &ConfigLoader{
		configPath: configPath,
		envPrefix:  envPrefix,
		viper:      viper.New(),
	}
}

// LoadConfig 加载配置
func (cl *ConfigLoader) LoadConfig() (*Config, error) {
	// load .env before anything reads from the environment, so a
	// developer's local overrides are visible to both EnvString below
	// and viper's own AutomaticEnv binding
	if err := envLoader().Load(); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	// 设置配置文件类型
	cl.viper.SetConfigType("yaml")
	
	// 设置环境变量前缀
	cl.viper.SetEnvPrefix(cl.envPrefix)
	cl.viper.AutomaticEnv()
	cl.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	
	// 绑定环境变量
	cl.bindEnvVars()
	
	// 设置默认值
	cl.setDefaults()
	
	// 加载配置文件
	if err := cl.loadConfigFile(); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	
	// 解析配置
	var config Config
	if err := cl.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	
	// 验证配置
	if err := cl.validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	
	return &config, nil
}

// loadConfigFile 加载配置文件
func (cl *ConfigLoader) loadConfigFile() error {
	if cl.configPath == "" {
		cl.configPath = EnvString("BROADLINK_CONFIG_PATH", "./configs")
	}
	
	// 获取环境
	env := cl.getEnvironment()
	
	// 设置配置文件搜索路径
	cl.viper.AddConfigPath(cl.configPath)
	cl.viper.AddConfigPath("./configs")
	cl.viper.AddConfigPath(".")
	
	// 尝试加载环境特定的配置文件
	configName := fmt.Sprintf("config.%s", env)
	cl.viper.SetConfigName(configName)
	
	if err := cl.viper.ReadInConfig(); err != nil {
		// 如果环境特定配置文件不存在，尝试加载默认配置文件
		cl.viper.SetConfigName("config")
		if err := cl.viper.ReadInConfig(); err != nil {
			return fmt.Errorf("config file not found: %w", err)
		}
	}
	
	return nil
}

// getEnvironment 获取运行环境
func (cl *ConfigLoader) getEnvironment() string {
	env := EnvString("BROADLINK_ENV", "")
	if env == "" {
		env = EnvString("GO_ENV", "development")
	}
	return env
}

// bindEnvVars 绑定环境变量
func (cl *ConfigLoader) bindEnvVars() {
	// App配置
	cl.viper.BindEnv("app.name", "BROADLINK_APP_NAME")
	cl.viper.BindEnv("app.version", "BROADLINK_APP_VERSION")
	cl.viper.BindEnv("app.environment", "BROADLINK_APP_ENVIRONMENT")
	cl.viper.BindEnv("app.debug", "BROADLINK_APP_DEBUG")
	cl.viper.BindEnv("app.timezone", "BROADLINK_APP_TIMEZONE")

	// 网络配置
	cl.viper.BindEnv("network.listen_address", "BROADLINK_LISTEN_ADDRESS")
	cl.viper.BindEnv("network.broadcast_address", "BROADLINK_BROADCAST_ADDRESS")
	cl.viper.BindEnv("network.discovery_port", "BROADLINK_DISCOVERY_PORT")
	cl.viper.BindEnv("network.per_attempt_timeout", "BROADLINK_PER_ATTEMPT_TIMEOUT")
	cl.viper.BindEnv("network.overall_timeout", "BROADLINK_OVERALL_TIMEOUT")

	// 发现配置
	cl.viper.BindEnv("discovery.timeout", "BROADLINK_DISCOVERY_TIMEOUT")
	cl.viper.BindEnv("discovery.subdevice_page", "BROADLINK_SUBDEVICE_PAGE")

	// 会话配置
	cl.viper.BindEnv("session.local_device_label", "BROADLINK_DEVICE_LABEL")
	cl.viper.BindEnv("session.command_timeout", "BROADLINK_COMMAND_TIMEOUT")

	// 日志配置
	cl.viper.BindEnv("log.level", "BROADLINK_LOG_LEVEL")
	cl.viper.BindEnv("log.file_path", "BROADLINK_LOG_FILE_PATH")
}

// setDefaults 设置默认值
func (cl *ConfigLoader) setDefaults() {
	// App默认值
	cl.viper.SetDefault("app.name", "broadlinkctl")
	cl.viper.SetDefault("app.version", "1.0.0")
	cl.viper.SetDefault("app.environment", "development")
	cl.viper.SetDefault("app.debug", false)
	cl.viper.SetDefault("app.timezone", "UTC")

	// 网络默认值
	cl.viper.SetDefault("network.listen_address", "0.0.0.0:0")
	cl.viper.SetDefault("network.broadcast_address", "255.255.255.255")
	cl.viper.SetDefault("network.discovery_port", 80)
	cl.viper.SetDefault("network.per_attempt_timeout", "1s")
	cl.viper.SetDefault("network.overall_timeout", "10s")

	// 发现默认值
	cl.viper.SetDefault("discovery.timeout", "3s")
	cl.viper.SetDefault("discovery.subdevice_page", 5)

	// 会话默认值
	cl.viper.SetDefault("session.local_device_label", "Test  1")
	cl.viper.SetDefault("session.command_timeout", "10s")

	// 日志默认值
	cl.viper.SetDefault("log.level", "info")
	cl.viper.SetDefault("log.format", "json")
	cl.viper.SetDefault("log.output", "stdout")
	cl.viper.SetDefault("log.file_path", "./logs/broadlinkctl.log")
	cl.viper.SetDefault("log.max_size", 100)
	cl.viper.SetDefault("log.max_backups", 3)
	cl.viper.SetDefault("log.max_age", 28)
	cl.viper.SetDefault("log.compress", true)
	cl.viper.SetDefault("log.caller", true)
}

// validateConfig 验证配置
func (cl *ConfigLoader) validateConfig(config *Config) error {
	if config.Network.DiscoveryPort <= 0 || config.Network.DiscoveryPort > 65535 {
		return fmt.Errorf("invalid discovery port: %d", config.Network.DiscoveryPort)
	}

	if config.Network.BroadcastAddress == "" {
		return fmt.Errorf("broadcast address is required")
	}

	if config.Discovery.SubdevicePage <= 0 {
		return fmt.Errorf("invalid subdevice page size: %d", config.Discovery.SubdevicePage)
	}

	return nil
}

// GetConfigPath 获取配置文件路径
func (cl *ConfigLoader) GetConfigPath() string {
	return cl.viper.ConfigFileUsed()
}

// LoadConfigFromFile 从指定文件加载配置
func LoadConfigFromFile(configFile string) (*Config, error) {
	configPath := filepath.Dir(configFile)
	loader := NewConfigLoader(configPath, "BROADLINK")
	return loader.LoadConfig()
}