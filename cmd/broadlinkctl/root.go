/*
 * @description: Cobra Root Command 定义
 */

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"broadlink/internal/config"
	"broadlink/internal/pkg/logger"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "broadlinkctl",
	Short: "broadlinkctl controls Broadlink-protocol smart-home devices",
	Long: `broadlinkctl discovers, authenticates with, and sends commands to
Broadlink-protocol devices (smart plugs, IR/RF remotes, thermostats, HVAC
controllers, curtain motors, sensors, and hubs) over the local network.

Examples:
  broadlinkctl discover
  broadlinkctl auth 192.168.1.50 34ea34aabbcc --devtype 0x2737
  broadlinkctl send 192.168.1.50 34ea34aabbcc --devtype 0x2733 --cmd power --on
  broadlinkctl status 192.168.1.50 34ea34aabbcc --devtype 0x2733
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initCLILogger(cmd)
	},
}

// Execute runs the root command, recovering from any panic so a malformed
// device response can never take the whole process down with it.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n[FATAL] broadlinkctl crashed unexpectedly: %v\n", r)
			os.Exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default: ./configs/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(newDiscoverCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newStatusCmd())
}

// initConfig reads the config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("configs")
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		// fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// initCLILogger initializes CLI-mode logging, controlled by --log-level.
func initCLILogger(cmd *cobra.Command) {
	flag := cmd.Flags().Lookup("log-level")
	level := "fatal"
	if flag != nil && flag.Changed {
		level = flag.Value.String()
	}

	switch level {
	case "debug":
		pterm.EnableDebugMessages()
	case "info":
		pterm.DisableDebugMessages()
	case "warn", "error", "fatal":
		pterm.DisableDebugMessages()
		pterm.Info = *pterm.Info.WithWriter(io.Discard)
	}

	logConfig := &config.LogConfig{
		Level:  level,
		Format: "text",
		Output: "stdout",
		Caller: false,
	}

	if _, err := logger.InitLogger(logConfig); err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
	}
}

// loadedConfig returns the process config, falling back to built-in
// defaults when no config file is present (a bare discover/send run
// shouldn't require one).
func loadedConfig() *config.Config {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		pterm.Debug.Printf("no config file found, using built-in defaults: %v\n", err)
		return defaultConfig()
	}
	return cfg
}

// defaultConfig mirrors the zero-value defaults config.LoadConfig would
// otherwise fill in from a config file, for the common case of running
// broadlinkctl with no configs/config.yaml on disk at all.
func defaultConfig() *config.Config {
	return &config.Config{
		App: &config.AppConfig{
			Name:        "broadlinkctl",
			Version:     "1.0.0",
			Environment: "development",
			Timezone:    "UTC",
		},
		Network: &config.NetworkConfig{
			ListenAddress:     "0.0.0.0:0",
			BroadcastAddress:  "255.255.255.255",
			DiscoveryPort:     80,
			PerAttemptTimeout: time.Second,
			OverallTimeout:    10 * time.Second,
		},
		Discovery: &config.DiscoveryConfig{
			Timeout:       3 * time.Second,
			SubdevicePage: 5,
		},
		Session: &config.SessionConfig{
			LocalDeviceLabel: "Test  1",
			CommandTimeout:   10 * time.Second,
		},
	}
}
