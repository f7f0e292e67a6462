// Package overlay owns the contents of the hintd annotation namespace in the
// editor. It pushes apply/clear notifications and tracks which documents
// currently display annotations, so that clearing is idempotent and a session
// can be emptied in one call.
package overlay

import (
	"context"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/overlaykit/hintd/src/hintd/entity"
	hintplugin "github.com/overlaykit/hintd/src/hintd/entity/hint-plugin"
	notifier "github.com/overlaykit/hintd/src/hintd/gateway/editor-client"
	"github.com/overlaykit/hintd/src/hintd/mapper"
	"github.com/overlaykit/hintd/src/hintd/repository/session"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _nameKey = "overlay"

// Controller applies and clears annotation batches for the current session.
type Controller interface {
	StartupInfo(ctx context.Context) (hintplugin.PluginInfo, error)

	// Apply replaces the namespace contents for a document with the given batch.
	// An empty batch empties the namespace.
	Apply(ctx context.Context, doc uri.URI, batch []entity.Annotation) error

	// Clear empties the namespace for a document. Clearing a document with no
	// applied annotations is a no-op.
	Clear(ctx context.Context, doc uri.URI) error

	// ClearAll empties the namespace for every annotated document in the session.
	ClearAll(ctx context.Context) error
}

// Params are inbound parameters to initialize a new plugin.
type Params struct {
	fx.In

	Sessions      session.Repository
	EditorGateway notifier.Gateway
	Logger        *zap.SugaredLogger
	Stats         tally.Scope
}

type appliedDocs map[uuid.UUID]map[uri.URI]int

type controller struct {
	sessions      session.Repository
	editorGateway notifier.Gateway
	logger        *zap.SugaredLogger
	stats         tally.Scope

	applied   appliedDocs
	appliedMu sync.Mutex
}

// New creates a new controller for overlay annotations.
func New(p Params) Controller {
	return &controller{
		sessions:      p.Sessions,
		editorGateway: p.EditorGateway,
		logger:        p.Logger.With("plugin", _nameKey),
		stats:         p.Stats.SubScope("overlay"),
		applied:       make(appliedDocs),
	}
}

// StartupInfo returns PluginInfo for this controller.
func (c *controller) StartupInfo(ctx context.Context) (hintplugin.PluginInfo, error) {
	priorities := map[string]hintplugin.Priority{
		protocol.MethodInitialize:           hintplugin.PriorityRegular,
		protocol.MethodShutdown:             hintplugin.PriorityAsync,
		protocol.MethodTextDocumentDidClose: hintplugin.PriorityAsync,
		hintplugin.MethodEndSession:         hintplugin.PriorityRegular,
	}

	methods := &hintplugin.Methods{
		PluginNameKey: _nameKey,

		Initialize: c.initialize,
		Shutdown:   c.shutdown,
		DidClose:   c.didClose,
		EndSession: c.endSession,
	}

	return hintplugin.PluginInfo{
		Priorities: priorities,
		Methods:    methods,
		NameKey:    _nameKey,
	}, nil
}

func (c *controller) Apply(ctx context.Context, doc uri.URI, batch []entity.Annotation) error {
	if len(batch) == 0 {
		return c.Clear(ctx, doc)
	}

	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	// Serialized so that the recorded state always matches the last
	// notification sent for the document.
	c.appliedMu.Lock()
	defer c.appliedMu.Unlock()

	if err := c.editorGateway.ApplyAnnotations(ctx, mapper.AnnotationsToApplyParams(doc, batch)); err != nil {
		return err
	}

	if c.applied[s.UUID] == nil {
		c.applied[s.UUID] = make(map[uri.URI]int)
	}
	c.applied[s.UUID][doc] = len(batch)
	c.stats.Counter("apply").Inc(1)
	c.updateMetricsLocked()
	return nil
}

func (c *controller) Clear(ctx context.Context, doc uri.URI) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	c.appliedMu.Lock()
	defer c.appliedMu.Unlock()
	return c.clearLocked(ctx, s.UUID, doc)
}

func (c *controller) ClearAll(ctx context.Context) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	c.appliedMu.Lock()
	defer c.appliedMu.Unlock()

	for doc := range c.applied[s.UUID] {
		if err := c.clearLocked(ctx, s.UUID, doc); err != nil {
			return err
		}
	}
	return nil
}

func (c *controller) clearLocked(ctx context.Context, id uuid.UUID, doc uri.URI) error {
	if _, ok := c.applied[id][doc]; !ok {
		return nil
	}

	if err := c.editorGateway.ClearAnnotations(ctx, mapper.DocumentToClearParams(doc)); err != nil {
		return err
	}

	delete(c.applied[id], doc)
	c.stats.Counter("clear").Inc(1)
	c.updateMetricsLocked()
	return nil
}

// initialize adds an entry to keep track of this session's annotated documents.
func (c *controller) initialize(ctx context.Context, params *protocol.InitializeParams, result *protocol.InitializeResult) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	c.appliedMu.Lock()
	defer c.appliedMu.Unlock()
	c.applied[s.UUID] = make(map[uri.URI]int)
	return nil
}

func (c *controller) shutdown(ctx context.Context) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	return c.disposeSession(s.UUID)
}

func (c *controller) endSession(ctx context.Context, uuid uuid.UUID) error {
	return c.disposeSession(uuid)
}

// didClose drops tracking for a closed document. The editor discards markers
// together with the buffer, so no clear notification is needed.
func (c *controller) didClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	c.appliedMu.Lock()
	defer c.appliedMu.Unlock()
	delete(c.applied[s.UUID], params.TextDocument.URI)
	c.updateMetricsLocked()
	return nil
}

func (c *controller) disposeSession(uuid uuid.UUID) error {
	c.appliedMu.Lock()
	defer c.appliedMu.Unlock()
	delete(c.applied, uuid)
	c.updateMetricsLocked()
	return nil
}

func (c *controller) updateMetricsLocked() {
	annotatedDocs := 0
	for _, docs := range c.applied {
		annotatedDocs += len(docs)
	}
	c.stats.Gauge("annotated_docs").Update(float64(annotatedDocs))
}
