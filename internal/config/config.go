// Package config handles configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/zorak1103/dclean/internal/docker"
	apperrors "github.com/zorak1103/dclean/internal/errors"
)

// Common errors
var (
	Err = errors.New("config error")
)

// LocalHostName is the name given to the implicit host when none are configured.
const LocalHostName = "local"

// Config represents the application configuration
type Config struct {
	Runtime      RuntimeConfig      `mapstructure:"runtime"`
	Hosts        []HostConfig       `mapstructure:"hosts"`
	Cleanup      CleanupConfig      `mapstructure:"cleanup"`
	Notification NotificationConfig `mapstructure:"notification"`
	Output       OutputConfig       `mapstructure:"output"`

	// ConfigFilePath stores the path to the loaded config file (not marshaled from YAML)
	ConfigFilePath string `mapstructure:"-"`
}

// RuntimeConfig selects how hosts are talked to
type RuntimeConfig struct {
	Mode        string        `mapstructure:"mode"`   // sdk or cli
	Binary      string        `mapstructure:"binary"` // runtime binary for cli mode
	PingTimeout time.Duration `mapstructure:"ping_timeout"`
}

// HostConfig names one runtime host. An empty address means the local default.
type HostConfig struct {
	Name    string `mapstructure:"name"`
	Address string `mapstructure:"address"`
}

// CleanupConfig contains sweep settings
type CleanupConfig struct {
	Containers  bool   `mapstructure:"containers"`
	Images      bool   `mapstructure:"images"`
	DryRun      bool   `mapstructure:"dry_run"`
	NamePattern string `mapstructure:"name_pattern"`
}

// NotificationConfig contains notification settings
type NotificationConfig struct {
	ShoutrrURL string `mapstructure:"shoutrrr_url"` // Shoutrrr URL format
	Enabled    bool   `mapstructure:"enabled"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	Color         bool   `mapstructure:"color"`
	ReportEnabled bool   `mapstructure:"report_enabled"`
	ReportsDir    string `mapstructure:"reports_dir"`
}

// autoDetectDockerHost determines the local runtime address based on environment and platform.
func autoDetectDockerHost() string {
	if os.Getenv("DOCKER_HOST") != "" {
		return os.Getenv("DOCKER_HOST")
	}
	// Check for Unix socket
	if _, err := os.Stat("/var/run/docker.sock"); err == nil {
		return "unix:///var/run/docker.sock"
	}
	// Empty lets the client pick its platform default
	return ""
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load() // nolint:errcheck // .env file is optional

	v := viper.New()

	// Set config file path
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/dclean")
		v.AddConfigPath("/etc/dclean")
	}

	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			configFile := v.ConfigFileUsed()
			if configFile == "" {
				configFile = configPath
			}
			return nil, &apperrors.ConfigurationError{ConfigPath: configFile, Err: err}
		}
		// Config file not found; using defaults and env vars
	}

	// Environment variable support
	v.SetEnvPrefix("DCLEAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return unmarshal(v)
}

// LoadFromViper reads configuration from the global viper instance (for testing)
func LoadFromViper() (*Config, error) {
	setDefaults(viper.GetViper())

	viper.SetEnvPrefix("DCLEAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	return unmarshal(viper.GetViper())
}

func unmarshal(v *viper.Viper) (*Config, error) {
	configFile := v.ConfigFileUsed()
	if configFile == "" {
		configFile = "(using defaults and environment variables)"
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &apperrors.ConfigurationError{ConfigPath: configFile, Err: err}
	}

	// Store the config file path in the struct (DI approach, no global state)
	cfg.ConfigFilePath = v.ConfigFileUsed()

	cfg.ApplyDefaultHost()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed for %s: %w", configFile, err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Runtime defaults
	v.SetDefault("runtime.mode", docker.ModeSDK)
	v.SetDefault("runtime.binary", "docker")
	v.SetDefault("runtime.ping_timeout", "5s")

	// Cleanup defaults
	v.SetDefault("cleanup.containers", true)
	v.SetDefault("cleanup.images", true)
	v.SetDefault("cleanup.dry_run", false)
	v.SetDefault("cleanup.name_pattern", "")

	// Notification defaults
	v.SetDefault("notification.shoutrrr_url", "") // Required for AutomaticEnv to work
	v.SetDefault("notification.enabled", false)

	// Output defaults
	v.SetDefault("output.color", true)
	v.SetDefault("output.report_enabled", false)
	v.SetDefault("output.reports_dir", "./reports")
}

// ApplyDefaultHost adds the implicit local host when no hosts are configured.
func (c *Config) ApplyDefaultHost() {
	if len(c.Hosts) == 0 {
		c.Hosts = []HostConfig{{Name: LocalHostName, Address: autoDetectDockerHost()}}
	}
}

// ParseHostFlag turns a --host value into a HostConfig.
// Accepted forms are "name=address" and a bare address, which is also used as the name.
// The bare value "local" means the local default address.
func ParseHostFlag(value string) (HostConfig, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return HostConfig{}, fmt.Errorf("%w: empty --host value", Err)
	}

	if name, address, ok := strings.Cut(value, "="); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return HostConfig{}, fmt.Errorf("%w: --host %q has an empty name", Err, value)
		}
		return HostConfig{Name: name, Address: strings.TrimSpace(address)}, nil
	}

	if value == LocalHostName {
		return HostConfig{Name: LocalHostName, Address: autoDetectDockerHost()}, nil
	}
	return HostConfig{Name: value, Address: value}, nil
}

// Validate ensures all required fields are set and values are within valid ranges.
func (c *Config) Validate() error {
	configSource := c.ConfigFilePath
	if configSource == "" {
		configSource = "(defaults/environment)"
	}

	if err := c.validateRuntime(configSource); err != nil {
		return err
	}

	if err := c.validateHosts(configSource); err != nil {
		return err
	}

	if c.Cleanup.NamePattern != "" {
		if _, err := regexp.Compile(c.Cleanup.NamePattern); err != nil {
			return configErr(configSource, "cleanup.name_pattern", fmt.Sprintf("invalid regexp: %v", err))
		}
	}

	if c.Notification.Enabled && strings.TrimSpace(c.Notification.ShoutrrURL) == "" {
		return configErr(configSource, "notification.shoutrrr_url",
			"is required when notification.enabled is true (set DCLEAN_NOTIFICATION_SHOUTRRR_URL)")
	}

	if c.Output.ReportEnabled && c.Output.ReportsDir == "" {
		return configErr(configSource, "output.reports_dir", "is required when output.report_enabled is true")
	}

	return nil
}

func (c *Config) validateRuntime(configSource string) error {
	switch c.Runtime.Mode {
	case docker.ModeSDK:
	case docker.ModeCLI:
		if c.Runtime.Binary == "" {
			return configErr(configSource, "runtime.binary", "is required in cli mode")
		}
	default:
		return configErr(configSource, "runtime.mode",
			fmt.Sprintf("must be %q or %q, got %q", docker.ModeSDK, docker.ModeCLI, c.Runtime.Mode))
	}

	if c.Runtime.PingTimeout <= 0 {
		return configErr(configSource, "runtime.ping_timeout",
			fmt.Sprintf("must be positive, got %s", c.Runtime.PingTimeout))
	}
	return nil
}

func (c *Config) validateHosts(configSource string) error {
	if len(c.Hosts) == 0 {
		return configErr(configSource, "hosts", "at least one host is required")
	}

	seen := make(map[string]bool, len(c.Hosts))
	for i, h := range c.Hosts {
		key := fmt.Sprintf("hosts[%d]", i)
		if strings.TrimSpace(h.Name) == "" {
			return configErr(configSource, key+".name", "is required")
		}
		if seen[h.Name] {
			return configErr(configSource, key+".name", fmt.Sprintf("duplicate host name %q", h.Name))
		}
		seen[h.Name] = true

		if c.Runtime.Mode == docker.ModeSDK && strings.HasPrefix(h.Address, "ssh://") {
			return configErr(configSource, key+".address",
				fmt.Sprintf("ssh:// addresses (%s) need runtime.mode: cli", h.Address))
		}
	}
	return nil
}

func configErr(source, key, msg string) error {
	return &apperrors.ConfigurationError{
		ConfigPath: source,
		Key:        key,
		Err:        fmt.Errorf("%w: %s", Err, msg),
	}
}
