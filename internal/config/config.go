// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/reelbudget/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete reelbudget configuration.
type Config struct {
	// Local (Ollama) configuration
	Local LocalConfig `toml:"local" json:"local"`

	// Project settings shown on the settings screen
	Project ProjectConfig `toml:"project" json:"project"`

	// HTTP API configuration
	Server ServerConfig `toml:"server" json:"server"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// LocalConfig contains local Ollama configuration.
type LocalConfig struct {
	// OllamaURL is the URL of the Ollama server
	OllamaURL string `toml:"ollama_url" json:"ollama_url"`
	// OllamaModel is the model sent with every generate request
	OllamaModel string `toml:"ollama_model" json:"ollama_model"`
	// TimeoutSecs bounds one generate call
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// OfflineMode never calls the model; only canned replies are used
	OfflineMode bool `toml:"offline_mode" json:"offline_mode"`
}

// ProjectConfig holds the project settings.
type ProjectConfig struct {
	Name          string  `toml:"name" json:"projectName"`
	TotalBudget   float64 `toml:"total_budget" json:"totalBudget"`
	Currency      string  `toml:"currency" json:"currency"`
	StartDate     string  `toml:"start_date" json:"startDate"`
	EndDate       string  `toml:"end_date" json:"endDate"`
	Notifications bool    `toml:"notifications" json:"notifications"`
	AutoSave      bool    `toml:"auto_save" json:"autoSave"`
}

// ServerConfig configures the JSON API.
type ServerConfig struct {
	// Addr is the listen address (default 127.0.0.1:8790)
	Addr string `toml:"addr" json:"addr"`
	// RateLimit is requests per second allowed per client IP
	RateLimit float64 `toml:"rate_limit" json:"rate_limit"`
	// RateBurst is the token bucket size per client IP
	RateBurst int `toml:"rate_burst" json:"rate_burst"`
}

// UIConfig contains terminal UI preferences.
type UIConfig struct {
	// Theme is "auto", "dark" or "light"
	Theme string `toml:"theme" json:"theme"`
	// Markdown renders assistant replies with glamour when stdout is a terminal
	Markdown bool `toml:"markdown" json:"markdown"`
	// LogFile receives log output for interactive commands (empty = config dir)
	LogFile string `toml:"log_file" json:"log_file"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Local: LocalConfig{
			OllamaURL:   "http://127.0.0.1:11434",
			OllamaModel: "llama2",
			TimeoutSecs: 60,
			OfflineMode: false,
		},
		Project: DefaultProject(),
		Server: ServerConfig{
			Addr:      "127.0.0.1:8790",
			RateLimit: 10,
			RateBurst: 20,
		},
		UI: UIConfig{
			Theme:    "auto",
			Markdown: true,
		},
	}
}

// DefaultProject returns the project settings a new budget starts with.
func DefaultProject() ProjectConfig {
	return ProjectConfig{
		Name:          "Feature Film Project",
		TotalBudget:   2500000,
		Currency:      "USD",
		StartDate:     "2024-01-01",
		EndDate:       "2024-12-31",
		Notifications: true,
		AutoSave:      true,
	}
}

// Timeout returns the generate timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Local.TimeoutSecs) * time.Second
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the configuration directory. REELBUDGET_HOME overrides
// the default of ~/.reelbudget.
func ConfigDir() (string, error) {
	if dir := os.Getenv("REELBUDGET_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".reelbudget"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns where interactive commands write their log.
func (c *Config) LogPath() (string, error) {
	if c.UI.LogFile != "" {
		return c.UI.LogFile, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "reelbudget.log"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// LoadDotEnv loads a .env file from the working directory if one exists.
// Variables already set in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// Load loads the default config file, applies environment overrides and
// validates the result. A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from path. A missing file is not an error.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, statErr := os.Stat(path); statErr == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, statErr)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to path with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# reelbudget configuration file\n")
	buf.WriteString("# Generated by reelbudget - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.Local.OllamaURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "local.ollama_url",
			Message: fmt.Sprintf("invalid URL '%s', must be http(s)://host:port", c.Local.OllamaURL),
		})
	}
	if strings.TrimSpace(c.Local.OllamaModel) == "" {
		errs = append(errs, ValidationError{Field: "local.ollama_model", Message: "must not be empty"})
	}
	if c.Local.TimeoutSecs < 1 || c.Local.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{
			Field:   "local.timeout_secs",
			Message: fmt.Sprintf("%d out of range 1-600", c.Local.TimeoutSecs),
		})
	}

	errs = append(errs, c.Project.validate()...)

	if c.Server.RateLimit < 0 {
		errs = append(errs, ValidationError{Field: "server.rate_limit", Message: "must not be negative"})
	}
	if c.Server.RateBurst < 0 {
		errs = append(errs, ValidationError{Field: "server.rate_burst", Message: "must not be negative"})
	}

	validThemes := map[string]bool{"auto": true, "dark": true, "light": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Validate checks the project settings on their own, as the settings
// screen does before saving.
func (p ProjectConfig) Validate() error {
	if errs := p.validate(); len(errs) > 0 {
		return errs
	}
	return nil
}

func (p ProjectConfig) validate() ValidateErrors {
	var errs ValidateErrors

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ValidationError{Field: "project.name", Message: "must not be empty"})
	}
	if p.TotalBudget < 0 {
		errs = append(errs, ValidationError{Field: "project.total_budget", Message: "must not be negative"})
	}
	if len(p.Currency) != 3 || strings.ToUpper(p.Currency) != p.Currency {
		errs = append(errs, ValidationError{
			Field:   "project.currency",
			Message: fmt.Sprintf("invalid currency '%s', expected a 3-letter code like USD", p.Currency),
		})
	}

	start, startErr := time.Parse("2006-01-02", p.StartDate)
	if startErr != nil {
		errs = append(errs, ValidationError{Field: "project.start_date", Message: "expected YYYY-MM-DD"})
	}
	end, endErr := time.Parse("2006-01-02", p.EndDate)
	if endErr != nil {
		errs = append(errs, ValidationError{Field: "project.end_date", Message: "expected YYYY-MM-DD"})
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		errs = append(errs, ValidationError{Field: "project.end_date", Message: "must not be before start_date"})
	}

	return errs
}

// SetDefaults fills zero-value fields that have no meaningful zero.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Local.OllamaURL == "" {
		c.Local.OllamaURL = defaults.Local.OllamaURL
	}
	if c.Local.OllamaModel == "" {
		c.Local.OllamaModel = defaults.Local.OllamaModel
	}
	if c.Local.TimeoutSecs == 0 {
		c.Local.TimeoutSecs = defaults.Local.TimeoutSecs
	}
	if c.Project.Name == "" {
		c.Project.Name = defaults.Project.Name
	}
	if c.Project.Currency == "" {
		c.Project.Currency = defaults.Project.Currency
	}
	if c.Project.StartDate == "" {
		c.Project.StartDate = defaults.Project.StartDate
	}
	if c.Project.EndDate == "" {
		c.Project.EndDate = defaults.Project.EndDate
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies REELBUDGET_* environment variables:
//   - REELBUDGET_OLLAMA_URL: overrides local.ollama_url
//   - REELBUDGET_MODEL: overrides local.ollama_model
//   - REELBUDGET_TIMEOUT: overrides local.timeout_secs
//   - REELBUDGET_OFFLINE: "1"/"true" enables local.offline_mode
//   - REELBUDGET_ADDR: overrides server.addr
//   - REELBUDGET_PROJECT: overrides project.name
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("REELBUDGET_OLLAMA_URL"); v != "" {
		c.Local.OllamaURL = v
	}
	if v := os.Getenv("REELBUDGET_MODEL"); v != "" {
		c.Local.OllamaModel = v
	}
	if v := os.Getenv("REELBUDGET_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.Local.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("REELBUDGET_OFFLINE"); v != "" {
		c.Local.OfflineMode = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("REELBUDGET_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("REELBUDGET_PROJECT"); v != "" {
		c.Project.Name = v
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "local.ollama_model").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation. String values are
// converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	parts := strings.Split(key, ".")
	if key == "" || len(parts) == 0 {
		return reflect.Value{}, errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("key '%s' names a section, not a value", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			boolVal, err := strconv.ParseBool(strings.ToLower(strVal))
			if err != nil {
				boolVal = strings.EqualFold(strVal, "yes")
			}
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"local.ollama_url",
		"local.ollama_model",
		"local.timeout_secs",
		"local.offline_mode",
		"project.name",
		"project.total_budget",
		"project.currency",
		"project.start_date",
		"project.end_date",
		"project.notifications",
		"project.auto_save",
		"server.addr",
		"server.rate_limit",
		"server.rate_burst",
		"ui.theme",
		"ui.markdown",
		"ui.log_file",
	}
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the configuration as indented JSON.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access and falls back to defaults on error.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// UpdateProject replaces the project settings of the global configuration
// after validating them.
func UpdateProject(p ProjectConfig) error {
	if err := p.Validate(); err != nil {
		return err
	}
	cfg := Global().Clone()
	cfg.Project = p
	SetGlobal(cfg)
	return nil
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
