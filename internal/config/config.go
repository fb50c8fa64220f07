// Package config loads service configuration from file, environment
// and defaults.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	*viper.Viper
}

// New loads configuration: defaults first, then an optional
// qtranslate.yaml, then QTRANSLATE_* environment variables.
func New() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", 8087)
	v.SetDefault("debug", false)
	v.SetDefault("local_only", true)
	v.SetDefault("target_basis", []string{"u3", "cx"})
	v.SetDefault("planner.max_iterations", 10000)
	v.SetDefault("planner.timeout", "5s")
	v.SetDefault("sim.shots", 1024)

	v.SetConfigName("qtranslate")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.qtranslate")

	v.SetEnvPrefix("QTRANSLATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return &Config{v}, nil
}
