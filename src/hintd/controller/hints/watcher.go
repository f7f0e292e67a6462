package hints

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/uuid"
	"github.com/overlaykit/hintd/src/hintd/entity"
	"gopkg.in/yaml.v3"
)

// _overrideFileName is the per-workspace override file. A write re-runs setup
// with the file's raw options.
const _overrideFileName = ".hintd.yaml"

type watchedSessions map[uuid.UUID]*fsnotify.Watcher

// watchWorkspace begins tracking the session's workspace root for changes to
// the override file. Failure to watch only disables hot reload.
func (c *controller) watchWorkspace(id uuid.UUID, workspaceRoot string) {
	if workspaceRoot == "" {
		return
	}

	c.watcherMu.Lock()
	defer c.watcherMu.Unlock()

	if _, ok := c.watchers[id]; ok {
		// Already watching.
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		c.logger.Warnw("creating override file watcher", "error", err)
		return
	}
	if err := watcher.Add(workspaceRoot); err != nil {
		c.logger.Warnw("watching workspace root", "workspaceRoot", workspaceRoot, "error", err)
		watcher.Close()
		return
	}
	c.watchers[id] = watcher

	ctx := context.WithValue(context.Background(), entity.SessionContextKey, id)
	go c.watchOverrides(ctx, watcher, filepath.Join(workspaceRoot, _overrideFileName))
}

func (c *controller) unwatchWorkspace(id uuid.UUID) {
	c.watcherMu.Lock()
	defer c.watcherMu.Unlock()

	watcher, ok := c.watchers[id]
	if !ok {
		return
	}
	watcher.Close()
	delete(c.watchers, id)
}

// watchOverrides monitors file system events until the watcher is closed.
func (c *controller) watchOverrides(ctx context.Context, watcher *fsnotify.Watcher, overridePath string) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Name != overridePath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			c.reloadOverrides(ctx, overridePath)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			c.logger.Errorw("override file watcher error", "error", err)
		}
	}
}

// reloadOverrides re-runs setup with the override file's raw options. A file
// that cannot be read or parsed leaves the active configuration untouched.
func (c *controller) reloadOverrides(ctx context.Context, overridePath string) {
	data, err := c.fs.ReadFile(overridePath)
	if err != nil {
		c.logger.Warnw("reading override file", "path", overridePath, "error", err)
		return
	}

	var raw entity.RawHintOptions
	if err := yaml.Unmarshal(data, &raw); err != nil {
		c.logger.Warnw("parsing override file", "path", overridePath, "error", err)
		c.stats.Counter("override_parse_errors").Inc(1)
		return
	}

	if err := c.applyConfig(ctx, raw); err != nil {
		c.logger.Errorw("applying override file", "path", overridePath, "error", err)
		return
	}

	if c.onSetup != nil {
		if err := c.onSetup(ctx); err != nil {
			c.logger.Errorw("rebuilding session methods after override", "error", err)
		}
	}
	c.stats.Counter("override_reloads").Inc(1)
}
