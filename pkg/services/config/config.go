// Package config loads the assistant configuration from an optional
// YAML file plus environment overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Reports struct {
	Dir  string `mapstructure:"dir"`
	Logo string `mapstructure:"logo"`
}

type Database struct {
	Path string `mapstructure:"path"`
}

type OpenAI struct {
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type Config struct {
	Server   Server   `mapstructure:"server"`
	Reports  Reports  `mapstructure:"reports"`
	Database Database `mapstructure:"database"`
	OpenAI   OpenAI   `mapstructure:"openai"`
}

// Load reads configuration from path (optional; pass "" to rely on
// defaults and environment). Environment variables use the ASSISTANT_
// prefix, e.g. ASSISTANT_SERVER_PORT.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "7860")
	v.SetDefault("reports.dir", "reports")
	v.SetDefault("reports.logo", "assets/logo.png")
	v.SetDefault("database.path", "data/sales.db")
	v.SetDefault("openai.model", "gpt-4.1-mini")

	v.SetEnvPrefix("ASSISTANT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
