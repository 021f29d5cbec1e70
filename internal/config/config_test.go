package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults_Valid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Arete", cfg.AppName)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"pdf", "docx", "txt"}, cfg.AllowedFileTypes)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSizeBytes())
	assert.Equal(t, ProviderAnthropic, cfg.LLMProvider)
}

func TestApplyEnv(t *testing.T) {
	cfg := Defaults()
	err := cfg.applyEnv(mapLookup(map[string]string{
		"APP_NAME":            "Arete Staging",
		"PORT":                "9090",
		"DEBUG":               "true",
		"LLM_PROVIDER":        "gemini",
		"GEMINI_API_KEY":      "g-key",
		"CLAUDE_API_KEY":      "claude-key",
		"MAX_FILE_SIZE_MB":    "5",
		"ALLOWED_FILE_TYPES":  "PDF, txt",
		"CORS_ORIGINS":        "https://a.example.com,https://b.example.com",
		"STORAGE_BUCKET":      "resumes",
		"USE_BROWSER":         "1",
		"OPTIMIZE_STEP_DELAY": "250ms",
		"LOG_FORMAT":          "text",
		"GITHUB_TOKEN":        "",
	}))
	require.NoError(t, err)

	assert.Equal(t, "Arete Staging", cfg.AppName)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "g-key", cfg.LLMAPIKey())
	assert.Equal(t, "claude-key", cfg.AnthropicAPIKey)
	assert.Equal(t, 5, cfg.MaxFileSizeMB)
	assert.Equal(t, []string{"pdf", "txt"}, cfg.AllowedFileTypes)
	assert.Len(t, cfg.CORSOrigins, 2)
	assert.Equal(t, "resumes", cfg.Storage.Bucket)
	assert.Equal(t, "us-east-1", cfg.Storage.Region, "unset variables keep defaults")
	assert.True(t, cfg.UseBrowser)
	assert.Equal(t, 250*time.Millisecond, cfg.OptimizeStepDelay.Std())
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.GitHubToken)
}

func TestApplyEnv_AnthropicKeyWinsOverClaudeKey(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.applyEnv(mapLookup(map[string]string{
		"CLAUDE_API_KEY":    "old",
		"ANTHROPIC_API_KEY": "new",
	})))
	assert.Equal(t, "new", cfg.LLMAPIKey())
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	cfg := Defaults()
	err := cfg.applyEnv(mapLookup(map[string]string{
		"PORT":                "eighty",
		"DEBUG":               "maybe",
		"OPTIMIZE_STEP_DELAY": "soon",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config error")
	assert.Contains(t, err.Error(), "PORT")
	assert.Contains(t, err.Error(), "DEBUG")
	assert.Contains(t, err.Error(), "OPTIMIZE_STEP_DELAY")
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, "arete.yaml", `
app_name: From File
port: 7000
optimize_step_delay: 2s
storage:
  bucket: file-bucket
`)
	t.Setenv("PORT", "7100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "From File", cfg.AppName)
	assert.Equal(t, 7100, cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.OptimizeStepDelay.Std())
	assert.Equal(t, "file-bucket", cfg.Storage.Bucket)
	assert.Equal(t, 24, cfg.JWTExpirationHours, "defaults survive the overlay")
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeFile(t, "arete.json", `{
		"database_url": "postgres://localhost/arete",
		"optimize_step_delay": 1.5,
		"allowed_file_types": ["pdf"]
	}`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/arete", cfg.DatabaseURL)
	assert.Equal(t, 1500*time.Millisecond, cfg.OptimizeStepDelay.Std())
	assert.Equal(t, []string{"pdf"}, cfg.AllowedFileTypes)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile("")
	assert.ErrorContains(t, err, "config path is empty")

	_, err = LoadFile("/nonexistent/path/config.json")
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = LoadFile(writeFile(t, "bad.json", "{ invalid json }"))
	assert.ErrorContains(t, err, "failed to parse config JSON")

	_, err = LoadFile(writeFile(t, "bad.yml", "port: [1, 2"))
	assert.ErrorContains(t, err, "failed to parse config YAML")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"port too high", func(c *Config) { c.Port = 70000 }, "'port'"},
		{"zero file size", func(c *Config) { c.MaxFileSizeMB = 0 }, "max_file_size_mb"},
		{"unsupported file type", func(c *Config) { c.AllowedFileTypes = []string{"pdf", "exe"} }, "unsupported file type"},
		{"no file types", func(c *Config) { c.AllowedFileTypes = nil }, "allowed_file_types"},
		{"unknown provider", func(c *Config) { c.LLMProvider = "openai" }, "llm_provider"},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }, "log level"},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
		{"bad database scheme", func(c *Config) { c.DatabaseURL = "mysql://localhost/db" }, "database_url"},
		{"auth without secret", func(c *Config) { c.AuthEnabled = true }, "JWT_SECRET"},
		{"negative delay", func(c *Config) { c.OptimizeStepDelay = Duration(-time.Second) }, "optimize_step_delay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config error")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
