// Copyright 2025 Naren Yellavula
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

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const configFileName = ".ipdir.yaml"

type DirectoryConfig struct {
	InputFile string `yaml:"input_file"`
	ErrorLog  string `yaml:"error_log"`
}

type CacheConfig struct {
	LookupExpiration time.Duration `yaml:"lookup_expiration"`
	CleanupInterval  time.Duration `yaml:"cleanup_interval"`
}

type MirrorConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Region      string `yaml:"region"`
	Endpoint    string `yaml:"endpoint"`
	Bucket      string `yaml:"bucket"`
	ErrorLogKey string `yaml:"error_log_key"`
	Table       string `yaml:"table"`
}

type Config struct {
	Directory DirectoryConfig `yaml:"directory"`
	LogLevel  string          `yaml:"log_level"`
	Cache     CacheConfig     `yaml:"cache"`
	Mirror    MirrorConfig    `yaml:"mirror"`
}

var defaultConfig = Config{
	Directory: DirectoryConfig{
		InputFile: "CS531_Inet.txt",
		ErrorLog:  "CS531_error-log.txt",
	},
	LogLevel: "warn",
	Cache: CacheConfig{
		LookupExpiration: 10 * time.Minute,
		CleanupInterval:  5 * time.Minute,
	},
	Mirror: MirrorConfig{
		ErrorLogKey: "error-log.txt",
		Table:       "IPAliases",
	},
}

// LoadConfig reads ~/.ipdir.yaml. A missing or unreadable file falls back to
// the defaults.
func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return withDefaults(Config{}), nil
	}
	return loadConfigFrom(configPath)
}

func loadConfigFrom(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return withDefaults(Config{}), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return withDefaults(Config{}), nil
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return withDefaults(Config{}), fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	return withDefaults(config), nil
}

// withDefaults fills every unset field from defaultConfig
func withDefaults(c Config) *Config {
	if c.Directory.InputFile == "" {
		c.Directory.InputFile = defaultConfig.Directory.InputFile
	}
	if c.Directory.ErrorLog == "" {
		c.Directory.ErrorLog = defaultConfig.Directory.ErrorLog
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultConfig.LogLevel
	}
	if c.Cache.LookupExpiration <= 0 {
		c.Cache.LookupExpiration = defaultConfig.Cache.LookupExpiration
	}
	if c.Cache.CleanupInterval <= 0 {
		c.Cache.CleanupInterval = defaultConfig.Cache.CleanupInterval
	}
	if c.Mirror.ErrorLogKey == "" {
		c.Mirror.ErrorLogKey = defaultConfig.Mirror.ErrorLogKey
	}
	if c.Mirror.Table == "" {
		c.Mirror.Table = defaultConfig.Mirror.Table
	}
	return &c
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configFileName), nil
}

func writeDefaultConfig(configPath string) error {
	data, err := yaml.Marshal(&defaultConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func displaySettings(w io.Writer) {
	configPath, err := getConfigPath()
	if err != nil {
		fmt.Fprintf(w, "❌ Failed to get config path: %v\n", err)
		return
	}

	configExists := true
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configExists = false
		fmt.Fprintf(w, "📝 Configuration file not found. Creating default configuration...\n\n")

		if err := writeDefaultConfig(configPath); err != nil {
			fmt.Fprintf(w, "❌ Failed to create default config file: %v\n", err)
			return
		}
		fmt.Fprintf(w, "✅ Created default configuration at: %s\n\n", configPath)
	}

	config, err := loadConfigFrom(configPath)
	if err != nil {
		fmt.Fprintf(w, "❌ Failed to load configuration: %v\n", err)
		return
	}

	fmt.Fprintf(w, "🔧 ipdir Configuration Settings\n")
	fmt.Fprintf(w, "═══════════════════════════════\n\n")

	if configExists {
		fmt.Fprintf(w, "📍 Config file: %s\n", configPath)
	} else {
		fmt.Fprintf(w, "📍 Config file: %s (newly created)\n", configPath)
	}

	fmt.Fprintf(w, "📊 Current settings:\n\n")

	fmt.Fprintf(w, "📂 %sDirectory:%s\n", Green, Reset)
	fmt.Fprintf(w, "  • %sinput_file%s: %s\n", Green, Reset, config.Directory.InputFile)
	fmt.Fprintf(w, "  • %serror_log%s: %s\n\n", Green, Reset, config.Directory.ErrorLog)

	fmt.Fprintf(w, "🪵 %slog_level%s: %s\n\n", Green, Reset, config.LogLevel)

	fmt.Fprintf(w, "⚡ %sLookup cache:%s\n", Green, Reset)
	fmt.Fprintf(w, "  • %slookup_expiration%s: %s\n", Green, Reset, config.Cache.LookupExpiration)
	fmt.Fprintf(w, "  • %scleanup_interval%s: %s\n\n", Green, Reset, config.Cache.CleanupInterval)

	fmt.Fprintf(w, "☁️  %sMirror:%s\n", Green, Reset)
	fmt.Fprintf(w, "  • %senabled%s: %t\n", Green, Reset, config.Mirror.Enabled)
	if config.Mirror.Enabled {
		fmt.Fprintf(w, "  • %sregion%s: %s\n", Green, Reset, config.Mirror.Region)
		if config.Mirror.Endpoint != "" {
			fmt.Fprintf(w, "  • %sendpoint%s: %s\n", Green, Reset, config.Mirror.Endpoint)
		}
		fmt.Fprintf(w, "  • %sbucket%s: %s\n", Green, Reset, config.Mirror.Bucket)
		fmt.Fprintf(w, "  • %serror_log_key%s: %s\n", Green, Reset, config.Mirror.ErrorLogKey)
		fmt.Fprintf(w, "  • %stable%s: %s\n", Green, Reset, config.Mirror.Table)
	} else {
		fmt.Fprintf(w, "\n💡 To mirror entries to DynamoDB and the error log to S3, edit %s:\n", configPath)
		fmt.Fprintf(w, "   mirror:\n     enabled: true\n     bucket: my-bucket\n")
	}
}
