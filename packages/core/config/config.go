package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. WAVE_TIMEOUT.
const EnvPrefix = "WAVE"

// Config represents the wave configuration
type Config struct {
	Dir             string            `json:"dir,omitempty"`
	Timeout         time.Duration     `json:"timeout,omitempty"`
	FollowRedirects *bool             `json:"followRedirects,omitempty"`
	MaxRedirects    int               `json:"maxRedirects,omitempty"`
	ValidateSSL     *bool             `json:"validateSSL,omitempty"`
	Proxy           string            `json:"proxy,omitempty"`
	Headers         map[string]string `json:"headers,omitempty"` // Default headers for all requests
	Verbose         *bool             `json:"verbose,omitempty"`
	NoColor         *bool             `json:"noColor,omitempty"`
	EnvFile         string            `json:"envFile,omitempty"`
	// Path is the file the config was read from; empty when none was found.
	Path string `json:"-"`
}

// LoadError is returned when a config file exists but cannot be used.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetFollowRedirects returns the follow redirects setting, defaulting to true
func (c *Config) GetFollowRedirects() bool {
	return getBool(c.FollowRedirects, true)
}

// GetValidateSSL returns the validate SSL setting, defaulting to true
func (c *Config) GetValidateSSL() bool {
	return getBool(c.ValidateSSL, true)
}

func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".wave.config.json",
	"wave.config.json",
	".waverc",
	".waverc.json",
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Dir:             ".wave",
		Timeout:         30 * time.Second,
		FollowRedirects: BoolPtr(true),
		MaxRedirects:    10,
		ValidateSSL:     BoolPtr(true),
		Verbose:         BoolPtr(false),
		NoColor:         BoolPtr(false),
	}
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		return loadConfig(path)
	}
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory. With
// no file present the defaults, overlaid with the environment, are returned.
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfig(configPath)
		}
	}
	return loadConfig("")
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func loadConfig(path string) (*Config, error) {
	v := newViper(path)
	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
	}

	cfg, err := fromViper(v)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	cfg.Path = path
	return DefaultConfig().Merge(cfg), nil
}

// fromViper reads only the keys that are set, so unset booleans stay nil and
// Merge leaves the defaults alone.
func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	if v.IsSet("dir") {
		cfg.Dir = v.GetString("dir")
	}
	if v.IsSet("timeout") {
		d, err := parseTimeout(v.GetString("timeout"))
		if err != nil {
			return nil, err
		}
		cfg.Timeout = d
	}
	if v.IsSet("maxRedirects") {
		n, err := strconv.Atoi(v.GetString("maxRedirects"))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("maxRedirects: %q is not a non-negative integer", v.GetString("maxRedirects"))
		}
		cfg.MaxRedirects = n
	}
	if v.IsSet("proxy") {
		cfg.Proxy = v.GetString("proxy")
	}
	if v.IsSet("envFile") {
		cfg.EnvFile = v.GetString("envFile")
	}
	if v.IsSet("headers") {
		cfg.Headers = v.GetStringMapString("headers")
	}

	for key, dst := range map[string]**bool{
		"followRedirects": &cfg.FollowRedirects,
		"validateSSL":     &cfg.ValidateSSL,
		"verbose":         &cfg.Verbose,
		"noColor":         &cfg.NoColor,
	} {
		if !v.IsSet(key) {
			continue
		}
		b, err := strconv.ParseBool(v.GetString(key))
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a boolean", key, v.GetString(key))
		}
		*dst = BoolPtr(b)
	}

	return cfg, nil
}

// parseTimeout accepts a Go duration ("30s") or a bare number of
// milliseconds.
func parseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.Atoi(s); err == nil {
		if ms < 0 {
			return 0, errors.New("timeout must not be negative")
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("timeout: %q is not a duration", s)
	}
	if d < 0 {
		return 0, errors.New("timeout must not be negative")
	}
	return d, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.Dir != "" {
		result.Dir = other.Dir
	}
	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}
	if other.MaxRedirects > 0 {
		result.MaxRedirects = other.MaxRedirects
	}
	if other.Proxy != "" {
		result.Proxy = other.Proxy
	}
	if other.EnvFile != "" {
		result.EnvFile = other.EnvFile
	}
	if other.Path != "" {
		result.Path = other.Path
	}

	// Boolean flags - only override if explicitly set in other config
	if other.FollowRedirects != nil {
		result.FollowRedirects = other.FollowRedirects
	}
	if other.ValidateSSL != nil {
		result.ValidateSSL = other.ValidateSSL
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	if len(c.Headers) > 0 || len(other.Headers) > 0 {
		result.Headers = make(map[string]string, len(c.Headers)+len(other.Headers))
		for k, v := range c.Headers {
			result.Headers[k] = v
		}
		for k, v := range other.Headers {
			result.Headers[k] = v
		}
	}

	return &result
}
