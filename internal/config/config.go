// Package config loads process configuration via viper, grounded on
// the teacher's internal/config/config.go (CONFIG_ENV-selected YAML
// file + mapstructure + SetDefault), generalized from the
// media-session fields (read_limit, ping_period, secret) to the room
// registry's own knobs.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config is the process-wide configuration, loaded once at startup
// and passed explicitly into the router and registry rather than
// read from ambient globals.
type Config struct {
	Mode        string `mapstructure:"mode"`
	Port        int    `mapstructure:"port"`
	StaticPath  string `mapstructure:"static_path"`
	LandingPath string `mapstructure:"landing_path"`
	MaxRooms    int    `mapstructure:"max_rooms"`
}

// Load reads config/config.<CONFIG_ENV>.yaml (CONFIG_ENV defaults to
// "dev"), falling back to the documented defaults when the file is
// absent — a missing config file is not a startup error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("static_path", "./web")
	v.SetDefault("landing_path", "/landing.html")
	v.SetDefault("max_rooms", 2500)

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("loaded config: %s\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
