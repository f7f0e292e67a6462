// Package docstate tracks open documents and their analysis-service connections.
package docstate

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/overlaykit/hintd/src/hintd/entity"
	hintplugin "github.com/overlaykit/hintd/src/hintd/entity/hint-plugin"
	analysisclient "github.com/overlaykit/hintd/src/hintd/gateway/analysis-client"
	hintderrors "github.com/overlaykit/hintd/src/hintd/internal/errors"
	"github.com/overlaykit/hintd/src/hintd/internal/executor"
	"github.com/overlaykit/hintd/src/hintd/mapper"
	"github.com/overlaykit/hintd/src/hintd/repository/session"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_nameKey            = "doc-state"
	_configKeyLanguages = "hints.languages"
)

// Controller tracks each session's open documents and lazily establishes an
// analysis-service connection for a document's workspace root.
type Controller interface {
	StartupInfo(ctx context.Context) (hintplugin.PluginInfo, error)

	// GetTextDocument returns the current contents of an open document.
	GetTextDocument(ctx context.Context, doc protocol.TextDocumentIdentifier) (protocol.TextDocumentItem, error)

	// WorkspaceRoot returns the resolved workspace root for an open document.
	WorkspaceRoot(ctx context.Context, doc protocol.TextDocumentIdentifier) (string, error)

	// OpenDocuments returns the identifiers of every open document in the session.
	OpenDocuments(ctx context.Context) ([]protocol.TextDocumentIdentifier, error)
}

// Params are inbound parameters to initialize a new plugin.
type Params struct {
	fx.In

	Sessions        session.Repository
	AnalysisGateway analysisclient.Gateway
	Executor        executor.Executor
	Logger          *zap.SugaredLogger
	Stats           tally.Scope
	Config          config.Provider
}

type documentEntry struct {
	Document      protocol.TextDocumentItem
	WorkspaceRoot string
}

type documentStore map[uuid.UUID]map[protocol.TextDocumentIdentifier]*documentEntry

type controller struct {
	sessions        session.Repository
	analysisGateway analysisclient.Gateway
	executor        executor.Executor
	logger          *zap.SugaredLogger
	stats           tally.Scope

	// languages lists the language identifiers that receive hints.
	// An empty list admits every document.
	languages []protocol.LanguageIdentifier

	documents   documentStore
	documentsMu sync.RWMutex
}

// New creates a new controller for document state.
func New(p Params) Controller {
	var languages []protocol.LanguageIdentifier
	if err := p.Config.Get(_configKeyLanguages).Populate(&languages); err != nil {
		panic(fmt.Errorf("unable to get supported languages from config: %w", err))
	}

	return &controller{
		sessions:        p.Sessions,
		analysisGateway: p.AnalysisGateway,
		executor:        p.Executor,
		logger:          p.Logger.With("plugin", _nameKey),
		stats:           p.Stats.SubScope("doc_state"),
		languages:       languages,
		documents:       make(documentStore),
	}
}

// StartupInfo returns PluginInfo for this controller.
func (c *controller) StartupInfo(ctx context.Context) (hintplugin.PluginInfo, error) {
	priorities := map[string]hintplugin.Priority{
		protocol.MethodInitialize: hintplugin.PriorityHigh,
		protocol.MethodShutdown:   hintplugin.PriorityAsync,

		protocol.MethodTextDocumentDidOpen:   hintplugin.PriorityHigh,
		protocol.MethodTextDocumentDidChange: hintplugin.PriorityHigh,
		protocol.MethodTextDocumentDidClose:  hintplugin.PriorityAsync,
		protocol.MethodTextDocumentDidSave:   hintplugin.PriorityHigh,
		hintplugin.MethodEndSession:          hintplugin.PriorityRegular,
	}

	methods := &hintplugin.Methods{
		PluginNameKey: _nameKey,

		Initialize: c.initialize,
		Shutdown:   c.shutdown,

		DidOpen:   c.didOpen,
		DidChange: c.didChange,
		DidClose:  c.didClose,
		DidSave:   c.didSave,

		EndSession: c.endSession,
	}

	return hintplugin.PluginInfo{
		Priorities: priorities,
		Methods:    methods,
		NameKey:    _nameKey,
	}, nil
}

func (c *controller) GetTextDocument(ctx context.Context, doc protocol.TextDocumentIdentifier) (protocol.TextDocumentItem, error) {
	entry, err := c.getDocumentEntry(ctx, doc)
	if err != nil {
		return protocol.TextDocumentItem{}, err
	}
	return entry.Document, nil
}

func (c *controller) WorkspaceRoot(ctx context.Context, doc protocol.TextDocumentIdentifier) (string, error) {
	entry, err := c.getDocumentEntry(ctx, doc)
	if err != nil {
		return "", err
	}
	return entry.WorkspaceRoot, nil
}

func (c *controller) OpenDocuments(ctx context.Context) ([]protocol.TextDocumentIdentifier, error) {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return nil, err
	}

	c.documentsMu.RLock()
	defer c.documentsMu.RUnlock()

	docs := make([]protocol.TextDocumentIdentifier, 0, len(c.documents[s.UUID]))
	for doc := range c.documents[s.UUID] {
		docs = append(docs, doc)
	}
	return docs, nil
}

func (c *controller) getDocumentEntry(ctx context.Context, doc protocol.TextDocumentIdentifier) (*documentEntry, error) {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return nil, err
	}

	c.documentsMu.RLock()
	defer c.documentsMu.RUnlock()

	if _, ok := c.documents[s.UUID]; !ok {
		return nil, &hintderrors.UUIDNotFoundError{UUID: s.UUID}
	}

	entry, ok := c.documents[s.UUID][doc]
	if !ok {
		return nil, &hintderrors.DocumentNotFoundError{Document: doc}
	}

	return entry, nil
}

// initialize adds an entry to keep track of this session's documents.
func (c *controller) initialize(ctx context.Context, params *protocol.InitializeParams, result *protocol.InitializeResult) error {
	defer c.updateMetrics()
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	c.documentsMu.Lock()
	defer c.documentsMu.Unlock()
	c.documents[s.UUID] = make(map[protocol.TextDocumentIdentifier]*documentEntry)
	return nil
}

// shutdown removes this session's documents.
func (c *controller) shutdown(ctx context.Context) error {
	defer c.updateMetrics()
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	return c.disposeSession(ctx, s.UUID)
}

// endSession removes this session's documents in the event that no shutdown request is received.
func (c *controller) endSession(ctx context.Context, uuid uuid.UUID) error {
	defer c.updateMetrics()
	return c.disposeSession(ctx, uuid)
}

// didOpen tracks a newly opened document of a supported language, resolves its
// workspace root and ensures an analysis connection for that root.
// A failed connection leaves the document without hints; only a failed root
// resolution is surfaced.
func (c *controller) didOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	defer c.updateMetrics()
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	if !c.supportedLanguage(params.TextDocument.LanguageID) {
		return nil
	}

	root, err := c.resolveRoot(s, params.TextDocument.URI.Filename())
	if err != nil {
		return err
	}

	if err := c.analysisGateway.Connect(ctx, root); err != nil {
		c.logger.Debugw("analysis connection unavailable", "workspaceRoot", root, "error", err)
		c.stats.Counter("connect_failed").Inc(1)
	}

	c.documentsMu.Lock()
	defer c.documentsMu.Unlock()
	if c.documents[s.UUID] == nil {
		return &hintderrors.UUIDNotFoundError{UUID: s.UUID}
	}

	c.documents[s.UUID][protocol.TextDocumentIdentifier{URI: params.TextDocument.URI}] = &documentEntry{
		Document:      params.TextDocument,
		WorkspaceRoot: root,
	}

	return nil
}

// didChange updates the document with the latest incoming changes.
func (c *controller) didChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	c.documentsMu.Lock()
	defer c.documentsMu.Unlock()
	entry, ok := c.documents[s.UUID][params.TextDocument.TextDocumentIdentifier]
	if !ok {
		// Untracked language, nothing to update.
		return nil
	}

	doc := entry.Document
	doc.Text, err = mapper.ApplyContentChanges(doc.Text, params.ContentChanges)
	if err != nil {
		return fmt.Errorf("adding changes to document: %w", err)
	}
	doc.Version = params.TextDocument.Version

	c.documents[s.UUID][params.TextDocument.TextDocumentIdentifier] = &documentEntry{
		Document:      doc,
		WorkspaceRoot: entry.WorkspaceRoot,
	}
	return nil
}

// didClose deletes the entry for a closed document.
func (c *controller) didClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	defer c.updateMetrics()
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	c.documentsMu.Lock()
	defer c.documentsMu.Unlock()
	delete(c.documents[s.UUID], protocol.TextDocumentIdentifier{URI: params.TextDocument.URI})
	return nil
}

// didSave reconciles the stored text with the saved contents when included.
func (c *controller) didSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	c.documentsMu.Lock()
	defer c.documentsMu.Unlock()

	entry, ok := c.documents[s.UUID][params.TextDocument]
	if !ok {
		return nil
	}

	if params.Text != "" {
		doc := entry.Document
		doc.Text = params.Text
		c.documents[s.UUID][params.TextDocument] = &documentEntry{
			Document:      doc,
			WorkspaceRoot: entry.WorkspaceRoot,
		}
	}
	return nil
}

// disposeSession removes a session's documents based on the session UUID.
func (c *controller) disposeSession(ctx context.Context, uuid uuid.UUID) error {
	c.documentsMu.Lock()
	defer c.documentsMu.Unlock()
	delete(c.documents, uuid)

	return nil
}

func (c *controller) supportedLanguage(lang protocol.LanguageIdentifier) bool {
	if len(c.languages) == 0 {
		return true
	}
	for _, l := range c.languages {
		if l == lang {
			return true
		}
	}
	return false
}

// resolveRoot runs the session's root command in the document's directory.
// Output is trimmed to the first line. A malformed command fails here, on its
// first invocation.
func (c *controller) resolveRoot(s *entity.Session, docPath string) (string, error) {
	command := []string{"git", "rev-parse", "--show-toplevel"}
	if s.HintConfig != nil && len(s.HintConfig.RootCommand) > 0 {
		command = append([]string(nil), s.HintConfig.RootCommand...)
	}

	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = filepath.Dir(docPath)
	stdout, stderr, _, err := c.executor.Run(cmd)
	if err != nil {
		return "", fmt.Errorf("resolving workspace root for %q: %s: %w", docPath, strings.TrimSpace(stderr), err)
	}

	root := strings.TrimSpace(stdout)
	if root == "" {
		return "", fmt.Errorf("root command %q produced no output for %q", strings.Join(command, " "), docPath)
	}
	return root, nil
}

func (c *controller) updateMetrics() {
	c.documentsMu.RLock()
	defer c.documentsMu.RUnlock()

	openDocs := 0
	for _, sessionDocs := range c.documents {
		openDocs += len(sessionDocs)
	}
	c.stats.Gauge("open_docs").Update(float64(openDocs))
}
