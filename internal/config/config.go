// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NER backends
const (
	NERBackendNone   = "none"
	NERBackendGemini = "gemini"
	NERBackendHTTP   = "http"
)

// Defaults
const (
	DefaultMaxTextLength = 10000
	DefaultBatchSize     = 4
	DefaultPort          = 8080
	DefaultLogLevel      = "info"
)

// Config represents the analyzer configuration. Values come from an optional
// JSON file, then JRE_* environment variables, then CLI flags.
type Config struct {
	// Entity recognition
	NERBackend string `json:"ner_backend,omitempty" validate:"omitempty,oneof=none gemini http"`
	NERURL     string `json:"ner_url,omitempty" validate:"required_if=NERBackend http,omitempty,url"` // Token-classification endpoint
	ModelName  string `json:"model_name,omitempty"`                                                 // Gemini model override
	APIKey     string `json:"api_key,omitempty"`                                                    // Gemini API key
	HFAPIToken string `json:"hf_api_token,omitempty"`                                               // Bearer token for the HTTP backend

	// Limits
	MaxTextLength int `json:"max_text_length,omitempty" validate:"gte=0"`     // Input cap in characters, 0 disables
	BatchSize     int `json:"batch_size,omitempty" validate:"gte=0,lte=64"` // Concurrent batch workers

	// Behavior
	LogLevel       string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error disabled"`
	CacheAnalyses  *bool  `json:"cache_analyses,omitempty"`  // Reuse stored reports by content hash
	UseBrowser     bool   `json:"use_browser,omitempty"`     // Use headless browser for SPA job boards
	VocabularyFile string `json:"vocabulary_file,omitempty"` // JSON word-list overrides
	DatabaseURL    string `json:"database_url,omitempty"`    // PostgreSQL connection URL
	Port           int    `json:"port,omitempty" validate:"gte=0,lte=65535"`
}

// Default returns the built-in configuration
func Default() Config {
	cache := true
	return Config{
		NERBackend:    NERBackendNone,
		MaxTextLength: DefaultMaxTextLength,
		BatchSize:     DefaultBatchSize,
		LogLevel:      DefaultLogLevel,
		CacheAnalyses: &cache,
		Port:          DefaultPort,
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

// ValidationError lists the fields that failed validation
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "config error: invalid " + strings.Join(e.Fields, ", ")
}

var validate = validator.New()

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("config error: %w", err)
		}
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", jsonName(fe.StructField()), fe.Tag()))
		}
		return &ValidationError{Fields: fields}
	}

	if c.VocabularyFile != "" {
		if _, err := os.Stat(c.VocabularyFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: vocabulary file not found: %s", c.VocabularyFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.NERBackend == "" {
		result.NERBackend = defaults.NERBackend
	}
	if result.NERURL == "" {
		result.NERURL = defaults.NERURL
	}
	if result.ModelName == "" {
		result.ModelName = defaults.ModelName
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.HFAPIToken == "" {
		result.HFAPIToken = defaults.HFAPIToken
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.VocabularyFile == "" {
		result.VocabularyFile = defaults.VocabularyFile
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.MaxTextLength == 0 {
		result.MaxTextLength = defaults.MaxTextLength
	}
	if result.BatchSize == 0 {
		result.BatchSize = defaults.BatchSize
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	if result.CacheAnalyses == nil && defaults.CacheAnalyses != nil {
		cache := *defaults.CacheAnalyses
		result.CacheAnalyses = &cache
	}

	// UseBrowser: cannot distinguish unset from false, CLI flags win

	return result
}

// ApplyEnv overrides fields from JRE_* and provider environment variables
func (c *Config) ApplyEnv() {
	setString(&c.NERBackend, "JRE_NER_BACKEND")
	setString(&c.NERURL, "JRE_NER_URL")
	setString(&c.ModelName, "JRE_MODEL_NAME")
	setString(&c.LogLevel, "JRE_LOG_LEVEL")
	setString(&c.VocabularyFile, "JRE_VOCABULARY_FILE")
	setString(&c.APIKey, "GEMINI_API_KEY")
	setString(&c.HFAPIToken, "HF_API_TOKEN")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setInt(&c.MaxTextLength, "JRE_MAX_TEXT_LENGTH")
	setInt(&c.BatchSize, "JRE_BATCH_SIZE")
	setInt(&c.Port, "PORT")

	if v, ok := os.LookupEnv("JRE_CACHE_ANALYSES"); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			c.CacheAnalyses = &b
		}
	}
}

// ShouldCache reports whether stored analyses may be reused; unset means true
func (c *Config) ShouldCache() bool {
	return c.CacheAnalyses == nil || *c.CacheAnalyses
}

// Load reads path (when non-empty), applies the environment, fills defaults
// and validates the result
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	merged := cfg.MergeWithDefaults(Default())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

var jsonNames = map[string]string{
	"NERBackend":    "ner_backend",
	"NERURL":        "ner_url",
	"MaxTextLength": "max_text_length",
	"BatchSize":     "batch_size",
	"LogLevel":      "log_level",
	"Port":          "port",
}

func jsonName(field string) string {
	if name, ok := jsonNames[field]; ok {
		return name
	}
	return field
}
