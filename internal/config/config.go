// Package config provides configuration loading and validation for the CLI
// and the local server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/elevate/internal/export"
	"github.com/jonathan/elevate/internal/llm"
)

// Environment variables read by ApplyEnv.
const (
	EnvAPIKey     = "GEMINI_API_KEY"
	EnvChromePath = "CHROME_PATH"
	EnvPort       = "ELEVATE_PORT"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Server
	Host       string `json:"host,omitempty"`
	Port       int    `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	CORSOrigin string `json:"cors_origin,omitempty"`

	// Document
	Document string `json:"document,omitempty"` // JSON document loaded at startup

	// Generation
	APIKey        string  `json:"api_key,omitempty"` // Gemini API key
	LiteModel     string  `json:"lite_model,omitempty"`
	StandardModel string  `json:"standard_model,omitempty"`
	AdvancedModel string  `json:"advanced_model,omitempty"`
	Temperature   float32 `json:"temperature,omitempty" validate:"omitempty,min=0,max=2"`

	// SystemInstruction replaces the built-in coaching instruction
	SystemInstruction string `json:"system_instruction,omitempty"`

	// GenerationLimit is the number of generation requests allowed per
	// GenerationWindow, with up to GenerationBurst at once.
	GenerationLimit  int      `json:"generation_limit,omitempty" validate:"omitempty,min=1"`
	GenerationWindow Duration `json:"generation_window,omitempty"`
	GenerationBurst  int      `json:"generation_burst,omitempty" validate:"omitempty,min=1"`

	// Export
	ExportDir     string   `json:"export_dir,omitempty"`
	ExportMode    string   `json:"export_mode,omitempty" validate:"omitempty,oneof=raster vector"`
	ChromePath    string   `json:"chrome_path,omitempty"`
	ExportTimeout Duration `json:"export_timeout,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Duration is a time.Duration written as a Go duration string in JSON ("90s").
type Duration time.Duration

// MarshalJSON writes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON accepts a duration string such as "1h30m".
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Defaults returns the built-in configuration: a loopback server on port
// 8080 with a modest generation quota.
func Defaults() Config {
	models := llm.DefaultGeminiConfig()
	return Config{
		Host:             "127.0.0.1",
		Port:             8080,
		LiteModel:        models.Models[llm.TierLite],
		StandardModel:    models.Models[llm.TierStandard],
		AdvancedModel:    models.Models[llm.TierAdvanced],
		Temperature:      llm.DefaultTemperature,
		GenerationLimit:  60,
		GenerationWindow: Duration(time.Hour),
		GenerationBurst:  5,
		ExportDir:        ".",
		ExportMode:       string(export.ModeRaster),
		ExportTimeout:    Duration(60 * time.Second),
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

var (
	validate   = validator.New(validator.WithRequiredStructEnabled())
	configType = reflect.TypeOf(Config{})
)

// Validate checks that the configuration has valid values.
// Required values such as the API key are checked by the commands that need them.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' check (value %v)", jsonName(fe.StructField()), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.GenerationWindow < 0 || c.ExportTimeout < 0 {
		return fmt.Errorf("config error: durations must be non-negative")
	}

	if c.Document != "" {
		if _, err := os.Stat(c.Document); os.IsNotExist(err) {
			return fmt.Errorf("config error: document file not found: %s", c.Document)
		}
	}
	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome executable not found: %s", c.ChromePath)
		}
	}

	return nil
}

// jsonName returns the JSON key of a Config field.
func jsonName(field string) string {
	f, ok := configType.FieldByName(field)
	if !ok {
		return field
	}
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	return name
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	mergeString(&result.Host, defaults.Host)
	mergeString(&result.CORSOrigin, defaults.CORSOrigin)
	mergeString(&result.Document, defaults.Document)
	mergeString(&result.APIKey, defaults.APIKey)
	mergeString(&result.LiteModel, defaults.LiteModel)
	mergeString(&result.StandardModel, defaults.StandardModel)
	mergeString(&result.AdvancedModel, defaults.AdvancedModel)
	mergeString(&result.ExportDir, defaults.ExportDir)
	mergeString(&result.ExportMode, defaults.ExportMode)
	mergeString(&result.ChromePath, defaults.ChromePath)

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}
	if result.GenerationLimit == 0 {
		result.GenerationLimit = defaults.GenerationLimit
	}
	if result.GenerationWindow == 0 {
		result.GenerationWindow = defaults.GenerationWindow
	}
	if result.GenerationBurst == 0 {
		result.GenerationBurst = defaults.GenerationBurst
	}
	if result.ExportTimeout == 0 {
		result.ExportTimeout = defaults.ExportTimeout
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func mergeString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

// ApplyEnv overlays values from the environment. Environment values win over
// the file so secrets never need to be written to disk.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvChromePath); v != "" {
		c.ChromePath = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %v", EnvPort, err)
		}
		c.Port = port
	}
	return nil
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LLMConfig returns the model configuration for the generation client.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultGeminiConfig()
	if c.LiteModel != "" {
		cfg = cfg.WithModel(llm.TierLite, c.LiteModel)
	}
	if c.StandardModel != "" {
		cfg = cfg.WithModel(llm.TierStandard, c.StandardModel)
	}
	if c.AdvancedModel != "" {
		cfg = cfg.WithModel(llm.TierAdvanced, c.AdvancedModel)
	}
	if c.Temperature > 0 {
		cfg = cfg.WithTemperature(c.Temperature)
	}
	if c.SystemInstruction != "" {
		cfg = cfg.WithSystemInstruction(c.SystemInstruction)
	}
	return cfg
}

// ExportOptions returns the PDF renderer options.
func (c *Config) ExportOptions() export.Options {
	return export.Options{
		Mode:       export.Mode(c.ExportMode),
		ChromePath: c.ChromePath,
		Timeout:    time.Duration(c.ExportTimeout),
	}
}
