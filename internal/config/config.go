// Package config provides configuration management for nisclient
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Provider defines the interface for configuration providers.
type Provider interface {
	// GetConfig returns the current application configuration.
	GetConfig() *Settings
	// SetConfig sets the application configuration.
	SetConfig(c *Settings)
	// InitConfig loads the configuration from defaults and the config file.
	InitConfig() (*Settings, error)
	// SetConfigFilePath sets the configuration file path.
	SetConfigFilePath(p string)
}

// defaultConfigProvider implements the Provider interface.
type defaultConfigProvider struct {
	cfg  *Settings
	path string
}

// NewDefaultConfigProvider creates a new default config provider.
func NewDefaultConfigProvider() Provider {
	return &defaultConfigProvider{}
}

// NewConfigProvider creates a provider and loads the configuration into it.
func NewConfigProvider() (Provider, error) {
	p := NewDefaultConfigProvider()
	if _, err := p.InitConfig(); err != nil {
		return nil, err
	}
	return p, nil
}

// Default configuration values. The RedHat rpcbind releases list is the
// set of EL major releases whose ypbind needs rpcbind running first.
const (
	DefaultOutputFormat = "yaml"
	DefaultRenderRoot   = "./rendered"
	DefaultBackup       = false
	DefaultVerbose      = false
)

// DefaultRedHatRPCBindReleases returns the EL major releases that need rpcbind.
func DefaultRedHatRPCBindReleases() []string {
	return []string{"6", "7"}
}

// Settings represents the configuration for nisclient.
type Settings struct {
	FactsFile             string   `yaml:"factsFile"`
	ParamsFile            string   `yaml:"paramsFile"`
	OutputFormat          string   `yaml:"outputFormat"`
	RenderRoot            string   `yaml:"renderRoot"`
	Backup                bool     `yaml:"backup"`
	Verbose               bool     `yaml:"verbose"`
	RedHatRPCBindReleases []string `yaml:"redhatRPCBindReleases"`
}

func (p *defaultConfigProvider) SetConfig(c *Settings) {
	p.cfg = c
}

func (p *defaultConfigProvider) GetConfig() *Settings {
	if p.cfg == nil {
		p.cfg = defaults()
	}
	return p.cfg
}

func (p *defaultConfigProvider) SetConfigFilePath(path string) {
	p.path = path
}

func (p *defaultConfigProvider) InitConfig() (*Settings, error) {
	cfg, err := initConfigInternal(p.path)
	if err != nil {
		return nil, err
	}
	p.cfg = cfg
	return p.cfg, nil
}

func defaults() *Settings {
	return &Settings{
		OutputFormat:          DefaultOutputFormat,
		RenderRoot:            DefaultRenderRoot,
		Backup:                DefaultBackup,
		Verbose:               DefaultVerbose,
		RedHatRPCBindReleases: DefaultRedHatRPCBindReleases(),
	}
}

// initConfigInternal loads path when given, otherwise the first config.yaml
// found on the search paths. A missing explicit file is an error.
func initConfigInternal(path string) (*Settings, error) {
	cfg := defaults()

	viper.SetDefault("outputFormat", DefaultOutputFormat)
	viper.SetDefault("renderRoot", DefaultRenderRoot)
	viper.SetDefault("backup", DefaultBackup)
	viper.SetDefault("verbose", DefaultVerbose)
	viper.SetDefault("redhatRPCBindReleases", DefaultRedHatRPCBindReleases())

	viper.SetConfigType("yaml")
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(os.ExpandEnv("$HOME/.config/nisclient"))
		viper.AddConfigPath("/etc/opt/nisclient")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	return cfg, nil
}
