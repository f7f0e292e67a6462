package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigDir(t *testing.T) {
	tests := []struct {
		name           string
		setupEnv       func()
		expectedResult string
	}{
		{
			name: "returns environment variable when set",
			setupEnv: func() {
				os.Setenv("HINTD_CONFIG_DIR", "/custom/config/path")
			},
			expectedResult: "/custom/config/path",
		},
		{
			name: "returns default path when environment variable not set",
			setupEnv: func() {
				os.Unsetenv("HINTD_CONFIG_DIR")
			},
			expectedResult: "src/hintd/config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupEnv()
			t.Cleanup(func() {
				os.Unsetenv("HINTD_CONFIG_DIR")
			})

			result := getConfigDir()
			assert.Equal(t, tt.expectedResult, result)
		})
	}
}

func TestNewConfigMissingDirectory(t *testing.T) {
	t.Setenv("HINTD_CONFIG_DIR", "/nonexistent/path")

	provider, err := NewConfig()
	assert.Error(t, err)
	assert.Nil(t, provider)
}

func TestNewConfigFilePriority(t *testing.T) {
	tempDir := t.TempDir()

	metaConfig := `files:
  - base.yaml
  - development.yaml`

	baseConfig := `service:
  name: base-service
logging:
  level: info`

	devConfig := `logging:
  level: debug`

	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "meta.yaml"), []byte(metaConfig), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "base.yaml"), []byte(baseConfig), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "development.yaml"), []byte(devConfig), 0644))

	t.Setenv("HINTD_CONFIG_DIR", tempDir)

	provider, err := NewConfig()
	require.NoError(t, err)
	require.NotNil(t, provider)

	cfg := provider.(Config)
	assert.Equal(t, "config", cfg.Name())

	serviceName := cfg.Get("service.name")
	assert.True(t, serviceName.HasValue())
	assert.Equal(t, "base-service", serviceName.String())

	// Later files override earlier ones.
	loggingLevel := cfg.Get("logging.level")
	assert.True(t, loggingLevel.HasValue())
	assert.Equal(t, "debug", loggingLevel.String())
}

func TestNewConfigSkipsMissingFiles(t *testing.T) {
	tempDir := t.TempDir()

	metaConfig := `files:
  - base.yaml
  - local.yaml`

	baseConfig := `service:
  name: hintd`

	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "meta.yaml"), []byte(metaConfig), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "base.yaml"), []byte(baseConfig), 0644))

	t.Setenv("HINTD_CONFIG_DIR", tempDir)

	provider, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "hintd", provider.Get("service.name").String())
}
