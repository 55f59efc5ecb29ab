// Package config loads the bot's configuration from a file and from
// the environment.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/mktierney/rolecall"
)

// ErrMissingToken indicates that no Discord bot token was configured.
var ErrMissingToken = errors.New("config: token is required")

// Config holds the program's configuration.
type Config struct {
	Token                string   `mapstructure:"token"`
	GuildID              string   `mapstructure:"guild_id"`
	Prefix               string   `mapstructure:"prefix"`
	Whitelist            []string `mapstructure:"whitelist"`
	RoleColor            string   `mapstructure:"role_color"`
	MaxRoles             int      `mapstructure:"max_roles"`
	Database             string   `mapstructure:"database"`
	LogLevel             string   `mapstructure:"log_level"`
	HistoryRetentionDays int      `mapstructure:"history_retention_days"`
}

var keys = []string{
	"token",
	"guild_id",
	"prefix",
	"whitelist",
	"role_color",
	"max_roles",
	"database",
	"log_level",
	"history_retention_days",
}

// Load reads configuration from the given file, overlaid with any
// ROLECALL_* environment variables. An empty path means environment
// only.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("prefix", "community")
	v.SetDefault("max_roles", 1)
	v.SetDefault("role_color", "#1abc9c")
	v.SetDefault("log_level", "info")
	v.SetDefault("history_retention_days", 90)

	v.SetEnvPrefix("rolecall")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, err
	}

	if config.Token == "" {
		return Config{}, ErrMissingToken
	}
	if config.MaxRoles < 0 {
		return Config{}, fmt.Errorf("config: max_roles must not be negative, got %d", config.MaxRoles)
	}
	if _, err := config.Color(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Color parses the configured role color into its integer form.
func (c Config) Color() (int, error) {
	hex := strings.TrimPrefix(c.RoleColor, "#")
	color, err := strconv.ParseInt(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("config: bad role_color %q: %w", c.RoleColor, err)
	}
	return int(color), nil
}

// Registry builds the whitelist registry described by the config.
func (c Config) Registry() (rolecall.Registry, error) {
	color, err := c.Color()
	if err != nil {
		return rolecall.Registry{}, err
	}
	return rolecall.NewRegistry(c.Prefix, color, c.MaxRoles, c.Whitelist), nil
}
