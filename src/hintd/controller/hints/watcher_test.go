package hints

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/overlaykit/hintd/src/hintd/entity"
	"github.com/overlaykit/hintd/src/hintd/factory"
	"github.com/overlaykit/hintd/src/hintd/internal/fs"
)

func TestReloadOverrides(t *testing.T) {
	dir := t.TempDir()
	overridePath := filepath.Join(dir, _overrideFileName)

	t.Run("valid override applied", func(t *testing.T) {
		s := &entity.Session{UUID: factory.UUID()}
		env := getTestEnv(t, s)
		env.controller.fs = fs.New()

		rebuilds := 0
		env.controller.OnSetup(func(ctx context.Context) error {
			rebuilds++
			return nil
		})

		require.NoError(t, os.WriteFile(overridePath, []byte("triggers: textDocument/didChange\nenabledAtStartup: false\n"), 0644))
		env.controller.reloadOverrides(env.ctx, overridePath)

		assert.Equal(t, 1, rebuilds)
		require.NotNil(t, s.HintConfig)
		assert.Equal(t, []string{"textDocument/didChange"}, s.HintConfig.Triggers)
		assert.False(t, s.HintsEnabled)
	})

	t.Run("malformed override ignored", func(t *testing.T) {
		s := &entity.Session{UUID: factory.UUID()}
		env := getTestEnv(t, s)
		env.controller.fs = fs.New()

		require.NoError(t, os.WriteFile(overridePath, []byte("triggers: [unclosed\n"), 0644))
		env.controller.reloadOverrides(env.ctx, overridePath)
		assert.Nil(t, s.HintConfig)
	})

	t.Run("missing file ignored", func(t *testing.T) {
		s := &entity.Session{UUID: factory.UUID()}
		env := getTestEnv(t, s)
		env.controller.fs = fs.New()

		env.controller.reloadOverrides(env.ctx, filepath.Join(dir, "absent.yaml"))
		assert.Nil(t, s.HintConfig)
	})
}

func TestWatchWorkspace(t *testing.T) {
	s := &entity.Session{UUID: factory.UUID()}
	env := getTestEnv(t, s)
	dir := t.TempDir()

	env.controller.watchWorkspace(s.UUID, dir)
	assert.Len(t, env.controller.watchers, 1)

	// Watching twice keeps a single watcher.
	env.controller.watchWorkspace(s.UUID, dir)
	assert.Len(t, env.controller.watchers, 1)

	env.controller.unwatchWorkspace(s.UUID)
	assert.Len(t, env.controller.watchers, 0)

	// Unwatching an unknown session is a no-op.
	env.controller.unwatchWorkspace(s.UUID)
}

func TestWatchWorkspaceEmptyRoot(t *testing.T) {
	s := &entity.Session{UUID: factory.UUID()}
	env := getTestEnv(t, s)

	env.controller.watchWorkspace(s.UUID, "")
	assert.Len(t, env.controller.watchers, 0)
}
