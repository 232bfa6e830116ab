package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/elevate/internal/export"
	"github.com/jonathan/elevate/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"port": 9090,
		"standard_model": "gemini-custom",
		"generation_window": "30m",
		"export_mode": "vector",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "gemini-custom", cfg.StandardModel)
	assert.Equal(t, Duration(30*time.Minute), cfg.GenerationWindow)
	assert.Equal(t, "vector", cfg.ExportMode)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_BadDuration(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{"export_timeout": "soon"}`), 0644))

	_, err := LoadConfig(tmpFile)
	assert.Error(t, err)
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults", cfg: Defaults()},
		{name: "empty", cfg: Config{}},
		{name: "port out of range", cfg: Config{Port: 70000}, wantErr: "'port'"},
		{name: "unknown export mode", cfg: Config{ExportMode: "png"}, wantErr: "'export_mode'"},
		{name: "temperature too high", cfg: Config{Temperature: 3}, wantErr: "'temperature'"},
		{name: "negative window", cfg: Config{GenerationWindow: Duration(-time.Second)}, wantErr: "non-negative"},
		{name: "missing document", cfg: Config{Document: "/nonexistent/doc.json"}, wantErr: "document file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{
		Port:          9000,
		StandardModel: "custom",
	}

	merged := partial.MergeWithDefaults(Defaults())

	// Custom values should be preserved
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "custom", merged.StandardModel)

	// Default values should fill in empty fields
	assert.Equal(t, "127.0.0.1", merged.Host)
	assert.Equal(t, "gemini-2.5-flash-lite", merged.LiteModel)
	assert.Equal(t, 60, merged.GenerationLimit)
	assert.Equal(t, Duration(time.Hour), merged.GenerationWindow)
	assert.Equal(t, "raster", merged.ExportMode)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Host: "0.0.0.0", Port: 1}
	assert.Equal(t, cfg, cfg.MergeWithDefaults(Config{}))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvChromePath, "/usr/bin/chromium")
	t.Setenv(EnvPort, "9999")

	cfg := Config{APIKey: "file-key", Port: 8080}
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "/usr/bin/chromium", cfg.ChromePath)
	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, "127.0.0.1:9999", (&Config{Host: "127.0.0.1", Port: cfg.Port}).Addr())
}

func TestApplyEnv_InvalidPort(t *testing.T) {
	t.Setenv(EnvPort, "eighty")
	cfg := Config{}
	err := cfg.ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPort)
}

func TestLLMConfig(t *testing.T) {
	cfg := Config{AdvancedModel: "gemini-ultra", Temperature: 0.2}
	llmCfg := cfg.LLMConfig()

	assert.Equal(t, "gemini-ultra", llmCfg.GetModel(llm.TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash", llmCfg.GetModel(llm.TierStandard))
	assert.Equal(t, float32(0.2), llmCfg.Temperature)
	assert.Equal(t, llm.DefaultSystemInstruction, llmCfg.SystemInstruction)

	cfg.SystemInstruction = "Be brief."
	assert.Equal(t, "Be brief.", cfg.LLMConfig().SystemInstruction)
}

func TestExportOptions(t *testing.T) {
	cfg := Defaults()
	cfg.ChromePath = "/opt/chrome"
	opts := cfg.ExportOptions()

	assert.Equal(t, export.ModeRaster, opts.Mode)
	assert.Equal(t, "/opt/chrome", opts.ChromePath)
	assert.Equal(t, 60*time.Second, opts.Timeout)
}

func TestDuration_JSON(t *testing.T) {
	data, err := Duration(90 * time.Second).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(data))
}
