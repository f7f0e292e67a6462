// Package hintddaemon implements the hintd business logic.
package hintddaemon

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	docstate "github.com/overlaykit/hintd/src/hintd/controller/doc-state"
	"github.com/overlaykit/hintd/src/hintd/controller/hints"
	"github.com/overlaykit/hintd/src/hintd/controller/overlay"
	"github.com/overlaykit/hintd/src/hintd/entity"
	hintplugin "github.com/overlaykit/hintd/src/hintd/entity/hint-plugin"
	notifier "github.com/overlaykit/hintd/src/hintd/gateway/editor-client"
	"github.com/overlaykit/hintd/src/hintd/internal/fs"
	"github.com/overlaykit/hintd/src/hintd/mapper"
	"github.com/overlaykit/hintd/src/hintd/repository/session"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// Error templates
	_errBadPluginCall       = "calling plugin: %s"
	_errPluginReturnedError = "plugin %q returned error: %s"

	// Configuration keys
	_idleTimeoutMinutesKey = "idleTimeoutMinutes"
	_pluginsKey            = "hintdPlugins"

	// Numerical constants
	_contextTimeoutSecondsAsync = 600
)

// Controller orchestrates the business logic for each request.
type Controller interface {
	// LSP Methods defined per protocol.
	Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error)
	Initialized(ctx context.Context, params *protocol.InitializedParams) (err error)
	Shutdown(ctx context.Context) (err error)
	Exit(ctx context.Context) error

	// Document related methods.
	DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error
	DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error
	DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error
	DidSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) error

	// Hint state methods.
	HintsSetup(ctx context.Context, params *entity.RawHintOptions) error
	HintsShow(ctx context.Context) error
	HintsHide(ctx context.Context) error
	HintsToggle(ctx context.Context) error

	// Custom methods for use within this service.
	RequestFullShutdown(ctx context.Context) error
	InitSession(ctx context.Context, conn *jsonrpc2.Conn) (uuid.UUID, error)
	EndSession(ctx context.Context, uuid uuid.UUID) error
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Shutdowner    fx.Shutdowner
	Sessions      session.Repository
	EditorGateway notifier.Gateway
	Logger        *zap.SugaredLogger
	Config        config.Provider
	FS            fs.HintdFS

	PluginDocState docstate.Controller
	PluginOverlay  overlay.Controller
	PluginHints    hints.Controller
}

type controller struct {
	sessions           session.Repository
	shutdowner         fx.Shutdowner
	idleTimer          *time.Timer
	idleTimerMu        sync.Mutex
	idleTimeoutMinutes time.Duration
	logger             *zap.SugaredLogger
	editorGateway      notifier.Gateway
	pluginConfig       map[string]bool
	pluginsAll         []hintplugin.Plugin
	wg                 sync.WaitGroup
	fs                 fs.HintdFS

	// stateMu guards pluginMethods and fullShutdown, which are touched from
	// per-connection goroutines.
	stateMu       sync.Mutex
	fullShutdown  bool
	pluginMethods map[uuid.UUID]hintplugin.RuntimePrioritizedMethods
}

// New constructs a new top-level controller for the service.
func New(p Params) (Controller, error) {
	ctx := context.Background()

	var timeoutMinutesRaw int64
	if err := p.Config.Get(_idleTimeoutMinutesKey).Populate(&timeoutMinutesRaw); err != nil || timeoutMinutesRaw == 0 {
		return nil, fmt.Errorf("unable to get idle timeout from config: %w", err)
	}
	var pluginConfig map[string]bool
	if err := p.Config.Get(_pluginsKey).Populate(&pluginConfig); err != nil {
		return nil, fmt.Errorf("unable to get plugin keys from config: %w", err)
	}

	// When creating a new plugin, add it as a dependency in Params, then add it to the list of available plugins here.
	availablePlugins := []hintplugin.Plugin{p.PluginDocState, p.PluginOverlay, p.PluginHints}

	c := &controller{
		sessions:      p.Sessions,
		shutdowner:    p.Shutdowner,
		logger:        p.Logger,
		editorGateway: p.EditorGateway,
		fs:            p.FS,

		idleTimeoutMinutes: time.Duration(timeoutMinutesRaw) * time.Minute,
		pluginMethods:      map[uuid.UUID]hintplugin.RuntimePrioritizedMethods{},
		pluginConfig:       pluginConfig,
		pluginsAll:         availablePlugins,
	}
	c.refreshIdleTimer(ctx)

	// Workspace override reloads replace the session configuration outside of
	// a hints/setup request, so the method table is rebuilt through this hook.
	if p.PluginHints != nil {
		p.PluginHints.OnSetup(c.registerSessionPlugins)
	}

	return c, nil
}

// registerSessionPlugins rebuilds the session's prioritized method table from
// each plugin's current StartupInfo. The previous table is replaced wholesale,
// so trigger bindings never accumulate across repeated setups.
func (c *controller) registerSessionPlugins(ctx context.Context) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return fmt.Errorf("getting session from context: %w", err)
	}

	enabledPlugins := []hintplugin.PluginInfo{}
	for _, plugin := range c.pluginsAll {
		if plugin == nil {
			continue
		}
		info, err := plugin.StartupInfo(ctx)
		if err != nil {
			return fmt.Errorf("getting plugin startup info: %w", err)
		}

		if isEnabled := c.pluginConfig[info.NameKey]; isEnabled {
			c.logger.Infow("plugin registration", "plugin", info.NameKey, "status", "enabled")
			enabledPlugins = append(enabledPlugins, info)
		} else {
			c.logger.Infow("plugin registration", "plugin", info.NameKey, "status", "disabled")
		}
	}
	methods, err := mapper.PluginInfoToRuntimePrioritizedMethods(enabledPlugins)
	if err != nil {
		return fmt.Errorf("prioritizing plugin methods: %w", err)
	}

	c.stateMu.Lock()
	c.pluginMethods[s.UUID] = methods
	c.stateMu.Unlock()
	return nil
}

// executePluginMethods will execute modules in the order defined for the given method.
// The caller is responsible for defining and providing a handlerSync and handlerAsync function, which should call the corresponding method with proper arguments.
// The same function may be passed in for both sync and async if no difference is needed.
func (c *controller) executePluginMethods(ctx context.Context, method string, handlerSync func(ctx context.Context, m *hintplugin.Methods), handlerAsync func(ctx context.Context, m *hintplugin.Methods)) error {
	if handlerSync == nil || handlerAsync == nil {
		return fmt.Errorf("handlers cannot be nil")
	}

	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return fmt.Errorf("getting session from context: %w", err)
	}

	// Tables are replaced wholesale, never mutated in place, so the lists are
	// safe to walk after the lock is released.
	c.stateMu.Lock()
	methodLists, ok := c.pluginMethods[id][method]
	c.stateMu.Unlock()
	if !ok {
		// No need to execute if this method has no registered plugins.
		return nil
	}

	for _, current := range methodLists.Sync {
		handlerSync(ctx, current)
	}

	// Outer goroutine will spawn a goroutine for each asynchronous plugin method, then wait for them to complete with a timeout.
	// Plugins that implement asynchronous methods are responsible for respecting the context timeout or cancellation signal.
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		// New context with its own timeout for asynchronous calls.
		asyncCtx := context.WithValue(context.Background(), entity.SessionContextKey, ctx.Value(entity.SessionContextKey))
		asyncCtx, cancel := context.WithTimeout(asyncCtx, _contextTimeoutSecondsAsync*time.Second)
		defer cancel()

		// Spawn a separate goroutine for each method's context, then wait for them all to complete.
		var innerWg sync.WaitGroup
		for _, current := range methodLists.Async {
			currentMethods := current
			innerWg.Add(1)
			go func() {
				defer innerWg.Done()
				handlerAsync(asyncCtx, currentMethods)
			}()
		}

		innerWg.Wait()
	}()

	return nil
}
