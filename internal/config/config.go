// Package config provides configuration management for the sem CLI.
//
// It implements the disciplined Viper pattern where Viper stays contained
// in this package and the rest of the codebase receives explicit Config structs.
// Configuration sources are resolved in this order: flags > env > config file > defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Configuration keys. Environment variables use the SEM_ prefix with dashes
// replaced by underscores, e.g. SEM_API_TOKEN.
const (
	KeyAPIURL         = "api-url"
	KeyAPIToken       = "api-token"
	KeyTimeout        = "timeout"
	KeyRetries        = "retries"
	KeyOrgConcurrency = "org-concurrency"
	KeyLogLevel       = "log-level"
	KeyLogFormat      = "log-format"
	KeyOutput         = "output"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "SEM"

const (
	dirName  = ".sem"
	fileName = "config"
	fileType = "yaml"
)

// Keys lists every key accepted by Set, in display order.
var Keys = []string{
	KeyAPIURL,
	KeyAPIToken,
	KeyTimeout,
	KeyRetries,
	KeyOrgConcurrency,
	KeyLogLevel,
	KeyLogFormat,
	KeyOutput,
}

// Config is the explicit configuration struct
// This is what the rest of the codebase sees
type Config struct {
	APIURL         string
	APIToken       string
	Timeout        time.Duration
	Retries        int
	OrgConcurrency int
	LogLevel       string
	LogFormat      string
	Output         string
}

// Init initializes viper with defaults and config file paths
func Init() error {
	viper.SetConfigName(fileName)
	viper.SetConfigType(fileType)
	viper.AddConfigPath("$HOME/" + dirName)

	viper.SetDefault(KeyAPIURL, "https://api.semaphoreci.com/v2")
	viper.SetDefault(KeyAPIToken, "")
	viper.SetDefault(KeyTimeout, 15*time.Second)
	viper.SetDefault(KeyRetries, 0)
	viper.SetDefault(KeyOrgConcurrency, 4)
	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyLogFormat, "console")
	viper.SetDefault(KeyOutput, "table")

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}

// BindFlags binds persistent command line flags so they take precedence
// over environment and file values. Flags missing from fs are skipped.
func BindFlags(fs *pflag.FlagSet) error {
	for _, key := range Keys {
		f := fs.Lookup(key)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", key, err)
		}
	}
	return nil
}

// Load reads from all sources and returns explicit Config
func Load() (*Config, error) {
	cfg := current()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func current() *Config {
	return &Config{
		APIURL:         viper.GetString(KeyAPIURL),
		APIToken:       viper.GetString(KeyAPIToken),
		Timeout:        viper.GetDuration(KeyTimeout),
		Retries:        viper.GetInt(KeyRetries),
		OrgConcurrency: viper.GetInt(KeyOrgConcurrency),
		LogLevel:       strings.ToLower(viper.GetString(KeyLogLevel)),
		LogFormat:      strings.ToLower(viper.GetString(KeyLogFormat)),
		Output:         strings.ToLower(viper.GetString(KeyOutput)),
	}
}

// Validate ensures config is sane
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("invalid %s: must not be empty", KeyAPIURL)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("invalid %s: %s (must be positive)", KeyTimeout, c.Timeout)
	}

	if c.Retries < 0 || c.Retries > 10 {
		return fmt.Errorf("invalid %s: %d (must be between 0 and 10)", KeyRetries, c.Retries)
	}

	if c.OrgConcurrency < 1 || c.OrgConcurrency > 64 {
		return fmt.Errorf("invalid %s: %d (must be between 1 and 64)", KeyOrgConcurrency, c.OrgConcurrency)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid %s: %s (must be debug, info, warn, or error)", KeyLogLevel, c.LogLevel)
	}

	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("invalid %s: %s (must be console or json)", KeyLogFormat, c.LogFormat)
	}

	if c.Output != "table" && c.Output != "json" {
		return fmt.Errorf("invalid %s: %s (must be table or json)", KeyOutput, c.Output)
	}

	return nil
}

// Set validates and persists a single key. Only the key being set is added
// to what the config file already holds; values that come from SEM_*
// variables, flags or defaults are never written.
func Set(key, value string) error {
	cfg := current()
	var (
		stored any
		err    error
	)
	switch key {
	case KeyAPIURL:
		cfg.APIURL = value
		stored = value
	case KeyAPIToken:
		cfg.APIToken = value
		stored = value
	case KeyTimeout:
		cfg.Timeout, err = time.ParseDuration(value)
		stored = cfg.Timeout.String()
	case KeyRetries:
		cfg.Retries, err = strconv.Atoi(value)
		stored = cfg.Retries
	case KeyOrgConcurrency:
		cfg.OrgConcurrency, err = strconv.Atoi(value)
		stored = cfg.OrgConcurrency
	case KeyLogLevel:
		cfg.LogLevel = strings.ToLower(value)
		stored = cfg.LogLevel
	case KeyLogFormat:
		cfg.LogFormat = strings.ToLower(value)
		stored = cfg.LogFormat
	case KeyOutput:
		cfg.Output = strings.ToLower(value)
		stored = cfg.Output
	default:
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys, ", "))
	}
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	path, err := filePath()
	if err != nil {
		return err
	}
	file, err := readFile(path)
	if err != nil {
		return err
	}
	file.Set(key, stored)
	if err := save(file, path); err != nil {
		return err
	}

	// Refresh the file layer of the process-wide view; env and flags stay on top.
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("reload config file: %w", err)
	}
	return nil
}

// filePath returns the config file in use, or $HOME/.sem/config.yaml when
// none was read.
func filePath() (string, error) {
	if path := viper.ConfigFileUsed(); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, dirName, fileName+"."+fileType), nil
}

// readFile loads only the config file at path into a fresh viper instance.
// A missing file yields an empty one.
func readFile(path string) (*viper.Viper, error) {
	file := viper.New()
	file.SetConfigFile(path)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return file, nil
	}
	if err := file.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return file, nil
}

// save writes file to path with owner-only permissions.
func save(file *viper.Viper, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := file.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	// The file holds the API token.
	return os.Chmod(path, 0o600)
}

// Display shows current config (for sem config show)
func Display() (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = "(not found)"
	}

	return fmt.Sprintf(`Configuration:
  api-url:            %s
  api-token:          %s
  timeout:            %s
  retries:            %d
  org-concurrency:    %d

Logging:
  log-level:          %s
  log-format:         %s
  output:             %s

Sources:
  Config file:        %s
  Environment:        %s_*
  Flags:              (per command)
`,
		cfg.APIURL,
		MaskToken(cfg.APIToken),
		cfg.Timeout,
		cfg.Retries,
		cfg.OrgConcurrency,
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.Output,
		configFile,
		EnvPrefix,
	), nil
}

// MaskToken hides all but the first four characters of a token.
func MaskToken(token string) string {
	switch {
	case token == "":
		return "(not set)"
	case len(token) <= 4:
		return "****"
	default:
		return token[:4] + strings.Repeat("*", 8)
	}
}
