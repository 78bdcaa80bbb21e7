// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/blinklabs-io/modledger/moderation"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ctxKey string

const configContextKey ctxKey = "modledger.config"

const (
	DefaultShutdownTimeout = "30s"
	DefaultBlockInterval   = "10m"
	envPrefix              = "modledger"
)

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

// tempConfig allows the settings to be nested under a top-level config key
type tempConfig struct {
	Config yaml.Node `yaml:"config,omitempty"`
}

type Config struct {
	DatabasePath      string            `yaml:"databasePath"      split_words:"true"`
	BindAddr          string            `yaml:"bindAddr"          split_words:"true"`
	Admin             string            `yaml:"admin"`
	PenaltyPool       string            `yaml:"penaltyPool"       split_words:"true"`
	BlockInterval     string            `yaml:"blockInterval"     split_words:"true"`
	ShutdownTimeout   string            `yaml:"shutdownTimeout"   split_words:"true"`
	TrustedFinalizers []string          `yaml:"trustedFinalizers" split_words:"true"`
	Moderation        moderation.Params `yaml:"moderation"`
	ApiRateLimit      float64           `yaml:"apiRateLimit"      split_words:"true"`
	ApiRateBurst      int               `yaml:"apiRateBurst"      split_words:"true"`
	ApiPort           uint              `yaml:"apiPort"           split_words:"true"`
	MetricsPort       uint              `yaml:"metricsPort"       split_words:"true"`
	Tracing           bool              `yaml:"tracing"`
	TracingStdout     bool              `yaml:"tracingStdout"     split_words:"true"`
}

// BlockIntervalDuration returns the parsed block interval
func (c *Config) BlockIntervalDuration() (time.Duration, error) {
	return parsePositiveDuration("blockInterval", c.BlockInterval)
}

// ShutdownTimeoutDuration returns the parsed shutdown timeout
func (c *Config) ShutdownTimeoutDuration() (time.Duration, error) {
	return parsePositiveDuration("shutdownTimeout", c.ShutdownTimeout)
}

func parsePositiveDuration(name string, val string) (time.Duration, error) {
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, val, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", name, val)
	}
	return d, nil
}

func (c *Config) validate() error {
	if c.Admin == "" {
		return errors.New("admin principal must be configured")
	}
	if _, err := c.BlockIntervalDuration(); err != nil {
		return err
	}
	if _, err := c.ShutdownTimeoutDuration(); err != nil {
		return err
	}
	if c.ApiRateLimit < 0 {
		return fmt.Errorf("invalid apiRateLimit: %v", c.ApiRateLimit)
	}
	if err := c.Moderation.Validate(); err != nil {
		return fmt.Errorf("invalid moderation config: %w", err)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		DatabasePath:    ".modledger",
		BindAddr:        "127.0.0.1",
		ApiPort:         8080,
		MetricsPort:     12799,
		BlockInterval:   DefaultBlockInterval,
		ShutdownTimeout: DefaultShutdownTimeout,
		Moderation:      moderation.DefaultParams(),
	}
}

var globalConfig = defaultConfig()

func LoadConfig(configFile string) (*Config, error) {
	// Load config file as YAML if provided
	if configFile == "" {
		// Check for config file in this path: ~/.modledger/modledger.yaml
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(homeDir, ".modledger", "modledger.yaml")
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}

		// Try to check for /etc/modledger/modledger.yaml if still not found
		if configFile == "" {
			systemPath := "/etc/modledger/modledger.yaml"
			if _, err := os.Stat(systemPath); err == nil {
				configFile = systemPath
			}
		}
	}

	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		var tempCfg tempConfig
		if err := yaml.Unmarshal(buf, &tempCfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
		if !tempCfg.Config.IsZero() {
			// Overlay config values onto existing defaults
			if err := tempCfg.Config.Decode(globalConfig); err != nil {
				return nil, fmt.Errorf("error parsing config section: %w", err)
			}
		} else {
			// Otherwise unmarshal the whole file as main config
			if err := yaml.Unmarshal(buf, globalConfig); err != nil {
				return nil, fmt.Errorf("error parsing config file: %w", err)
			}
		}
	}
	// Process environment variables
	err := envconfig.Process(envPrefix, globalConfig)
	if err != nil {
		return nil, fmt.Errorf("error processing environment: %+w", err)
	}
	if err := globalConfig.validate(); err != nil {
		return nil, err
	}
	return globalConfig, nil
}

func GetConfig() *Config {
	return globalConfig
}
