package serverinfofile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

func newProvider(t *testing.T, yaml string) config.Provider {
	provider, err := config.NewYAML(config.Source(strings.NewReader(yaml)))
	require.NoError(t, err)
	return provider
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name: "all required params are present",
			yaml: "serverInfoFilePath: /tmp/hintd-info.json",
		},
		{
			name:    "missing config key",
			yaml:    "unrelated: value",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Params{
				Lifecycle: fxtest.NewLifecycle(t),
				Config:    newProvider(t, tt.yaml),
				Logger:    zap.NewNop().Sugar(),
			})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateField(t *testing.T) {
	infoFile := filepath.Join(t.TempDir(), "hintd-info.json")
	m := &module{
		infofile:     infoFile,
		logger:       zap.NewNop().Sugar(),
		fileContents: make(map[string]string),
	}

	require.NoError(t, m.UpdateField("rpc-address", "127.0.0.1:27883"))
	require.NoError(t, m.UpdateField("version", "dev"))

	raw, err := os.ReadFile(infoFile)
	require.NoError(t, err)

	var contents map[string]string
	require.NoError(t, json.Unmarshal(raw, &contents))
	assert.Equal(t, "127.0.0.1:27883", contents["rpc-address"])
	assert.Equal(t, "dev", contents["version"])
}

func TestOnStop(t *testing.T) {
	infoFile := filepath.Join(t.TempDir(), "hintd-info.json")
	m := &module{
		infofile:     infoFile,
		logger:       zap.NewNop().Sugar(),
		fileContents: make(map[string]string),
	}
	require.NoError(t, m.UpdateField("rpc-address", "127.0.0.1:27883"))

	require.NoError(t, m.OnStop(context.Background()))
	_, err := os.Stat(infoFile)
	assert.True(t, os.IsNotExist(err))
}
