// Package hints implements the per-session hint state machine. It owns the
// active hint configuration, reacts to the configured trigger events by
// fetching inlay hints, and keeps the overlay namespace in sync with the
// enabled flag.
package hints

import (
	"context"
	"fmt"
	"sync"

	"github.com/gofrs/uuid"
	docstate "github.com/overlaykit/hintd/src/hintd/controller/doc-state"
	"github.com/overlaykit/hintd/src/hintd/controller/overlay"
	"github.com/overlaykit/hintd/src/hintd/entity"
	hintplugin "github.com/overlaykit/hintd/src/hintd/entity/hint-plugin"
	analysisclient "github.com/overlaykit/hintd/src/hintd/gateway/analysis-client"
	"github.com/overlaykit/hintd/src/hintd/internal/fs"
	hintdprotocol "github.com/overlaykit/hintd/src/hintd/internal/protocol"
	"github.com/overlaykit/hintd/src/hintd/repository/session"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_nameKey   = "hints"
	_configKey = "hints"
)

// Controller manages hint configuration and rendering state for each session.
type Controller interface {
	StartupInfo(ctx context.Context) (hintplugin.PluginInfo, error)

	// OnSetup registers a hook invoked after the session's configuration has
	// been replaced outside of a hints/setup request, so the caller can
	// rebuild its per-session method table.
	OnSetup(hook func(ctx context.Context) error)
}

// Params are inbound parameters to initialize a new plugin.
type Params struct {
	fx.In

	Sessions        session.Repository
	DocState        docstate.Controller
	Overlay         overlay.Controller
	AnalysisGateway analysisclient.Gateway
	FS              fs.HintdFS
	Logger          *zap.SugaredLogger
	Stats           tally.Scope
	Config          config.Provider
}

type hintsConfig struct {
	Triggers         entity.TriggerList `yaml:"triggers"`
	EnabledAtStartup bool               `yaml:"enabledAtStartup"`
	RootCommand      []string           `yaml:"rootCommand"`
}

type controller struct {
	sessions        session.Repository
	docState        docstate.Controller
	overlay         overlay.Controller
	analysisGateway analysisclient.Gateway
	fs              fs.HintdFS
	logger          *zap.SugaredLogger
	stats           tally.Scope

	// defaults is the configured baseline that raw setup options merge over.
	defaults entity.HintConfig

	// onSetup is invoked after the watcher replaces a session's configuration.
	onSetup func(ctx context.Context) error

	watchers  watchedSessions
	watcherMu sync.Mutex
}

// New creates a new controller for hint state.
func New(p Params) Controller {
	var raw hintsConfig
	if err := p.Config.Get(_configKey).Populate(&raw); err != nil {
		panic(fmt.Errorf("unable to get hint defaults from config: %w", err))
	}

	enabled := raw.EnabledAtStartup
	defaults := entity.NormalizeHintOptions(entity.RawHintOptions{
		Triggers:         raw.Triggers,
		EnabledAtStartup: &enabled,
		RootCommand:      raw.RootCommand,
	}, entity.HintConfig{})

	return &controller{
		sessions:        p.Sessions,
		docState:        p.DocState,
		overlay:         p.Overlay,
		analysisGateway: p.AnalysisGateway,
		fs:              p.FS,
		logger:          p.Logger.With("plugin", _nameKey),
		stats:           p.Stats.SubScope("hints"),
		defaults:        defaults,
		watchers:        make(watchedSessions),
	}
}

// StartupInfo returns PluginInfo for this controller. The refresh handler is
// bound to exactly the session's configured trigger methods, so rebuilding
// the method table after setup replaces the previous binding wholesale.
func (c *controller) StartupInfo(ctx context.Context) (hintplugin.PluginInfo, error) {
	cfg := c.defaults
	if s, err := c.sessions.GetFromContext(ctx); err == nil && s.HintConfig != nil {
		cfg = *s.HintConfig
	}

	priorities := map[string]hintplugin.Priority{
		protocol.MethodInitialize: hintplugin.PriorityRegular,
		protocol.MethodShutdown:   hintplugin.PriorityAsync,

		hintdprotocol.MethodHintsSetup:  hintplugin.PriorityHigh,
		hintdprotocol.MethodHintsShow:   hintplugin.PriorityHigh,
		hintdprotocol.MethodHintsHide:   hintplugin.PriorityHigh,
		hintdprotocol.MethodHintsToggle: hintplugin.PriorityHigh,

		hintplugin.MethodEndSession: hintplugin.PriorityRegular,
	}

	methods := &hintplugin.Methods{
		PluginNameKey: _nameKey,

		Initialize: c.initialize,
		Shutdown:   c.shutdown,

		HintsSetup:  c.setup,
		HintsShow:   c.show,
		HintsHide:   c.hide,
		HintsToggle: c.toggle,

		EndSession: c.endSession,
	}

	for _, trigger := range cfg.Triggers {
		switch trigger {
		case protocol.MethodTextDocumentDidOpen:
			priorities[protocol.MethodTextDocumentDidOpen] = hintplugin.PriorityAsync
			methods.DidOpen = c.refreshOnDidOpen
		case protocol.MethodTextDocumentDidChange:
			priorities[protocol.MethodTextDocumentDidChange] = hintplugin.PriorityAsync
			methods.DidChange = c.refreshOnDidChange
		case protocol.MethodTextDocumentDidSave:
			priorities[protocol.MethodTextDocumentDidSave] = hintplugin.PriorityAsync
			methods.DidSave = c.refreshOnDidSave
		default:
			c.logger.Warnw("ignoring unknown trigger", "trigger", trigger)
		}
	}

	return hintplugin.PluginInfo{
		Priorities: priorities,
		Methods:    methods,
		NameKey:    _nameKey,
	}, nil
}

func (c *controller) OnSetup(hook func(ctx context.Context) error) {
	c.onSetup = hook
}

// initialize installs the configured defaults into the session and begins
// watching the workspace for override files.
func (c *controller) initialize(ctx context.Context, params *protocol.InitializeParams, result *protocol.InitializeResult) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	if s.HintConfig == nil {
		cfg := c.defaults
		s.HintConfig = &cfg
		s.HintsEnabled = cfg.EnabledAtStartup
		if err := c.sessions.Set(ctx, s); err != nil {
			return fmt.Errorf("setting session hint defaults: %w", err)
		}
	}

	c.watchWorkspace(s.UUID, s.WorkspaceRoot)
	return nil
}

func (c *controller) shutdown(ctx context.Context) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	c.unwatchWorkspace(s.UUID)
	return nil
}

func (c *controller) endSession(ctx context.Context, uuid uuid.UUID) error {
	c.unwatchWorkspace(uuid)
	return nil
}

// setup replaces the session's configuration wholesale. Repeated calls never
// stack: the method table rebuild installs exactly one trigger binding.
func (c *controller) setup(ctx context.Context, params *entity.RawHintOptions) error {
	var raw entity.RawHintOptions
	if params != nil {
		raw = *params
	}
	return c.applyConfig(ctx, raw)
}

func (c *controller) applyConfig(ctx context.Context, raw entity.RawHintOptions) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	cfg := entity.NormalizeHintOptions(raw, c.defaults)
	s.HintConfig = &cfg
	s.HintsEnabled = cfg.EnabledAtStartup
	if err := c.sessions.Set(ctx, s); err != nil {
		return fmt.Errorf("setting session hint config: %w", err)
	}

	c.stats.Counter("setup").Inc(1)
	c.logger.Infow("hint configuration replaced",
		"session", s.UUID.String(),
		"triggers", cfg.Triggers,
		"enabled", s.HintsEnabled,
	)
	return nil
}

// show enables hint rendering. No fetch is issued until the next trigger event.
func (c *controller) show(ctx context.Context) error {
	return c.setEnabled(ctx, true)
}

// hide disables hint rendering and synchronously empties the overlay
// namespace for every document of the session.
func (c *controller) hide(ctx context.Context) error {
	if err := c.setEnabled(ctx, false); err != nil {
		return err
	}
	return c.overlay.ClearAll(ctx)
}

// toggle flips between the show and hide states.
func (c *controller) toggle(ctx context.Context) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	if s.HintsEnabled {
		return c.hide(ctx)
	}
	return c.show(ctx)
}

func (c *controller) setEnabled(ctx context.Context, enabled bool) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	s.HintsEnabled = enabled
	if err := c.sessions.Set(ctx, s); err != nil {
		return fmt.Errorf("setting session hint state: %w", err)
	}
	return nil
}

func (c *controller) refreshOnDidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	return c.maybeRefresh(ctx, protocol.TextDocumentIdentifier{URI: params.TextDocument.URI})
}

func (c *controller) refreshOnDidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	return c.maybeRefresh(ctx, params.TextDocument.TextDocumentIdentifier)
}

func (c *controller) refreshOnDidSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) error {
	return c.maybeRefresh(ctx, params.TextDocument)
}
