// Package config loads client settings from a config file, a .env file and
// the environment, and turns them into [client.Option] values.
//
// Sources are layered; later ones win:
//
//	defaults < config file < .env file < environment
//
// Environment variables carry the RESTER_ prefix with dots replaced by
// underscores, so throttle.rps is read from RESTER_THROTTLE_RPS.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/adamwoolhether/rester/client"
	"github.com/adamwoolhether/rester/client/mediatype"
	"github.com/adamwoolhether/rester/internal/validate"
)

// EnvPrefix prefixes every environment variable read by [Load].
const EnvPrefix = "RESTER"

// Config holds the settings of a client.
type Config struct {
	Timeout           time.Duration  `mapstructure:"timeout" validate:"gte=0"`
	UserAgent         string         `mapstructure:"user_agent"`
	NoFollowRedirects bool           `mapstructure:"no_follow_redirects"`
	MediaTypes        []string       `mapstructure:"media_types" validate:"dive,oneof=application/xml application/json application/x-www-form-urlencoded"`
	Throttle          ThrottleConfig `mapstructure:"throttle"`
}

// ThrottleConfig enables rate limiting when RPS is positive.
type ThrottleConfig struct {
	RPS   int `mapstructure:"rps" validate:"gte=0"`
	Burst int `mapstructure:"burst" validate:"gte=0,required_with=RPS"`
}

// defaults doubles as the list of known keys, which viper needs to
// resolve environment variables during Unmarshal.
var defaults = map[string]any{
	"timeout":             time.Duration(0),
	"user_agent":          "",
	"no_follow_redirects": false,
	"media_types":         []string{},
	"throttle.rps":        0,
	"throttle.burst":      0,
}

type loadOptions struct {
	configFile string
	envFile    string
}

// LoadOption is a functional option for [Load].
type LoadOption func(*loadOptions) error

// WithConfigFile reads settings from path. The format follows the file
// extension: yaml, json or toml.
func WithConfigFile(path string) LoadOption {
	return func(o *loadOptions) error {
		if path == "" {
			return errors.New("config file path must not be empty")
		}
		o.configFile = path
		return nil
	}
}

// WithEnvFile reads RESTER_ variables from a .env file at path. Variables
// already present in the process environment take precedence.
func WithEnvFile(path string) LoadOption {
	return func(o *loadOptions) error {
		if path == "" {
			return errors.New("env file path must not be empty")
		}
		o.envFile = path
		return nil
	}
}

// Load resolves a Config from its sources and validates it.
func Load(optFns ...LoadOption) (Config, error) {
	var opts loadOptions
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return Config{}, fmt.Errorf("applying load option: %w", err)
		}
	}

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.configFile != "" {
		v.SetConfigFile(opts.configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", opts.configFile, err)
		}
	}

	if opts.envFile != "" {
		if err := applyEnvFile(v, opts.envFile); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	for i, mt := range cfg.MediaTypes {
		cfg.MediaTypes[i] = strings.ToLower(strings.TrimSpace(mt))
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// applyEnvFile sets the known keys found in the .env file at path, skipping
// any the process environment already defines.
func applyEnvFile(v *viper.Viper, path string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("reading env file %s: %w", path, err)
	}

	for key := range defaults {
		name := EnvName(key)

		val, ok := env[name]
		if !ok {
			continue
		}
		if _, set := os.LookupEnv(name); set {
			continue
		}

		v.Set(key, val)
	}

	return nil
}

// EnvName returns the environment variable a config key is read from.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Options translates cfg into client options. Zero values are left out, so
// the client falls back to its own defaults. A non-empty MediaTypes list
// registers exactly those built-in media types, in order.
func (cfg Config) Options() ([]client.Option, error) {
	var opts []client.Option

	if cfg.Timeout > 0 {
		opts = append(opts, client.WithTimeout(cfg.Timeout))
	}

	if cfg.UserAgent != "" {
		opts = append(opts, client.WithUserAgent(cfg.UserAgent))
	}

	if cfg.NoFollowRedirects {
		opts = append(opts, client.WithNoFollowRedirects())
	}

	if cfg.Throttle.RPS > 0 {
		opts = append(opts, client.WithThrottle(cfg.Throttle.RPS, cfg.Throttle.Burst))
	}

	if len(cfg.MediaTypes) > 0 {
		builtin := mediatype.NewRegistry(mediatype.Defaults()...)

		types := make([]mediatype.MediaType, 0, len(cfg.MediaTypes))
		for _, ct := range cfg.MediaTypes {
			m, err := builtin.Resolve(ct)
			if err != nil {
				return nil, fmt.Errorf("configuring media types: %w", err)
			}
			types = append(types, m)
		}

		opts = append(opts, client.WithMediaTypes(types...))
	}

	return opts, nil
}
