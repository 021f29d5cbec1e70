// Package config loads server and CLI settings from defaults, an optional
// JSON or YAML file, and the environment, in that order of precedence.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported LLM providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Config holds every setting the application reads.
type Config struct {
	AppName string `json:"app_name,omitempty" yaml:"app_name,omitempty"`
	Debug   bool   `json:"debug,omitempty" yaml:"debug,omitempty"`
	Port    int    `json:"port,omitempty" yaml:"port,omitempty"`

	// DatabaseURL is a postgres:// URL or sqlite://path.
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"`

	LLMProvider     string `json:"llm_provider,omitempty" yaml:"llm_provider,omitempty"`
	AnthropicAPIKey string `json:"anthropic_api_key,omitempty" yaml:"anthropic_api_key,omitempty"`
	GeminiAPIKey    string `json:"gemini_api_key,omitempty" yaml:"gemini_api_key,omitempty"`

	MaxFileSizeMB    int      `json:"max_file_size_mb,omitempty" yaml:"max_file_size_mb,omitempty"`
	AllowedFileTypes []string `json:"allowed_file_types,omitempty" yaml:"allowed_file_types,omitempty"`
	CORSOrigins      []string `json:"cors_origins,omitempty" yaml:"cors_origins,omitempty"`

	Storage StorageConfig `json:"storage,omitempty" yaml:"storage,omitempty"`

	GitHubToken       string   `json:"github_token,omitempty" yaml:"github_token,omitempty"`
	UseBrowser        bool     `json:"use_browser,omitempty" yaml:"use_browser,omitempty"`
	OptimizeStepDelay Duration `json:"optimize_step_delay,omitempty" yaml:"optimize_step_delay,omitempty"`

	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"`

	AuthEnabled        bool   `json:"auth_enabled,omitempty" yaml:"auth_enabled,omitempty"`
	JWTSecret          string `json:"jwt_secret,omitempty" yaml:"jwt_secret,omitempty"`
	JWTExpirationHours int    `json:"jwt_expiration_hours,omitempty" yaml:"jwt_expiration_hours,omitempty"`
}

// StorageConfig points at an S3-compatible bucket. An empty Bucket selects
// in-memory storage.
type StorageConfig struct {
	Bucket    string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Endpoint  string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Region    string `json:"region,omitempty" yaml:"region,omitempty"`
	AccessKey string `json:"access_key,omitempty" yaml:"access_key,omitempty"`
	SecretKey string `json:"secret_key,omitempty" yaml:"secret_key,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		AppName:            "Arete",
		Port:               8080,
		DatabaseURL:        "sqlite://arete.db",
		LLMProvider:        ProviderAnthropic,
		MaxFileSizeMB:      10,
		AllowedFileTypes:   []string{"pdf", "docx", "txt"},
		CORSOrigins:        []string{"http://localhost:3000"},
		Storage:            StorageConfig{Region: "us-east-1"},
		LogLevel:           "info",
		LogFormat:          "json",
		JWTExpirationHours: 24,
	}
}

// Load builds the configuration. path may be empty; when set, the file is
// applied over the defaults before the environment.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile reads a configuration file without defaults or environment.
// The format is chosen by extension: .yaml and .yml are YAML, anything else
// is JSON.
func LoadFile(path string) (*Config, error) {
	var cfg Config
	if err := cfg.applyFile(path); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyFile(path string) error {
	if path == "" {
		return fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}
	return nil
}

// applyEnv overlays every variable that is set and non-empty.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	str := func(name string, dst *string) {
		if v, ok := get(name); ok {
			*dst = v
		}
	}
	list := func(name string, dst *[]string) {
		if v, ok := get(name); ok {
			*dst = splitList(v)
		}
	}
	var errs []string
	integer := func(name string, dst *int) {
		if v, ok := get(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %q is not an integer", name, v))
				return
			}
			*dst = n
		}
	}
	boolean := func(name string, dst *bool) {
		if v, ok := get(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %q is not a boolean", name, v))
				return
			}
			*dst = b
		}
	}

	str("APP_NAME", &c.AppName)
	boolean("DEBUG", &c.Debug)
	integer("PORT", &c.Port)
	str("DATABASE_URL", &c.DatabaseURL)
	str("LLM_PROVIDER", &c.LLMProvider)
	str("CLAUDE_API_KEY", &c.AnthropicAPIKey)
	str("ANTHROPIC_API_KEY", &c.AnthropicAPIKey)
	str("GEMINI_API_KEY", &c.GeminiAPIKey)
	integer("MAX_FILE_SIZE_MB", &c.MaxFileSizeMB)
	list("ALLOWED_FILE_TYPES", &c.AllowedFileTypes)
	list("CORS_ORIGINS", &c.CORSOrigins)
	str("STORAGE_BUCKET", &c.Storage.Bucket)
	str("STORAGE_ENDPOINT", &c.Storage.Endpoint)
	str("STORAGE_REGION", &c.Storage.Region)
	str("STORAGE_ACCESS_KEY", &c.Storage.AccessKey)
	str("STORAGE_SECRET_KEY", &c.Storage.SecretKey)
	str("GITHUB_TOKEN", &c.GitHubToken)
	boolean("USE_BROWSER", &c.UseBrowser)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	boolean("AUTH_ENABLED", &c.AuthEnabled)
	str("JWT_SECRET", &c.JWTSecret)
	integer("JWT_EXPIRATION_HOURS", &c.JWTExpirationHours)

	if v, ok := get("OPTIMIZE_STEP_DELAY"); ok {
		d, err := parseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("OPTIMIZE_STEP_DELAY: %v", err))
		} else {
			c.OptimizeStepDelay = Duration(d)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config error: %s", strings.Join(errs, "; "))
	}
	return nil
}

var supportedFileTypes = []string{"pdf", "docx", "txt"}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if c.MaxFileSizeMB < 1 {
		return fmt.Errorf("config error: 'max_file_size_mb' must be positive")
	}
	if len(c.AllowedFileTypes) == 0 {
		return fmt.Errorf("config error: 'allowed_file_types' must not be empty")
	}
	for _, ft := range c.AllowedFileTypes {
		if !slices.Contains(supportedFileTypes, ft) {
			return fmt.Errorf("config error: unsupported file type %q (supported: %s)", ft, strings.Join(supportedFileTypes, ", "))
		}
	}

	switch c.LLMProvider {
	case ProviderAnthropic, ProviderGemini:
	default:
		return fmt.Errorf("config error: 'llm_provider' must be %q or %q, got %q", ProviderAnthropic, ProviderGemini, c.LLMProvider)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config error: unknown log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or text, got %q", c.LogFormat)
	}

	if c.DatabaseURL != "" {
		u, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config error: invalid database_url: %v", err)
		}
		switch u.Scheme {
		case "postgres", "postgresql", "sqlite":
		default:
			return fmt.Errorf("config error: database_url scheme must be postgres or sqlite, got %q", u.Scheme)
		}
	}

	if c.OptimizeStepDelay < 0 {
		return fmt.Errorf("config error: 'optimize_step_delay' must not be negative")
	}

	if c.AuthEnabled {
		if _, err := c.JWT(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	return nil
}

// LLMAPIKey returns the API key for the configured provider.
func (c *Config) LLMAPIKey() string {
	if c.LLMProvider == ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.AnthropicAPIKey
}

// MaxFileSizeBytes returns the upload limit in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}

// Duration is a time.Duration that decodes from "1.5s"-style strings or a
// bare number of seconds.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v := v.(type) {
	case float64:
		*d = Duration(time.Duration(v * float64(time.Second)))
		return nil
	case string:
		parsed, err := parseDuration(v)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(data))
	}
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := parseDuration(node.Value)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
