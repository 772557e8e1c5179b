// Copyright 2026 OpenConsent Project
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
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ctxKey string

const configContextKey ctxKey = "consent.config"

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

const DefaultMetadataPlugin = "sqlite"

type Config struct {
	MetadataPlugin string `yaml:"metadataPlugin" envconfig:"CONSENT_METADATA_PLUGIN"`
	DatabasePath   string `yaml:"databasePath"                                       split_words:"true"`
}

var globalConfig = &Config{
	MetadataPlugin: DefaultMetadataPlugin,
	DatabasePath:   ".consent",
}

// LoadConfig loads the config from the given file path, falling back to
// well-known locations when none is given, and applies environment
// variable overrides on top
func LoadConfig(configFile string) (*Config, error) {
	if configFile == "" {
		// Check well-known locations for a config file
		if home, err := os.UserHomeDir(); err == nil {
			homeConfig := filepath.Join(home, ".consent", "consent.yaml")
			if _, err := os.Stat(homeConfig); err == nil {
				configFile = homeConfig
			}
		}
		if configFile == "" {
			etcConfig := filepath.Join("/etc", "consent", "consent.yaml")
			if _, err := os.Stat(etcConfig); err == nil {
				configFile = etcConfig
			}
		}
	}
	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Overlay config values onto existing defaults
		err = yaml.Unmarshal(buf, globalConfig)
		if err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}
	// Process environment variables
	err := envconfig.Process("consent", globalConfig)
	if err != nil {
		return nil, fmt.Errorf("error processing environment: %+w", err)
	}
	return globalConfig, nil
}

func GetConfig() *Config {
	return globalConfig
}
