package hintplugin

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/overlaykit/hintd/src/hintd/entity"
	hintdprotocol "github.com/overlaykit/hintd/src/hintd/internal/protocol"
	"go.lsp.dev/protocol"
)

const (
	_errorUnrecognizedMethod = "%q included in priority config, but is not a recognized method. Method name must be a valid LSP or hintd method. If method is new to hintd, ensure that hintplugin.Validate is updated."
	_errorMissingMethod      = "%q is included in the priority configuration, but is nil in Methods"
	_errorMissingField       = "missing %q field for this plugin"

	// MethodEndSession is an additional method outside of LSP protocol, which is called when the JSON-RPC connection has been closed.
	// This should be used to ensure cleanup of resources even if the client exits before calling 'shutdown' and 'exit'.
	MethodEndSession = "end_session"
)

// RuntimePrioritizedMethods represents ordered list of modules to run for a given method.
type RuntimePrioritizedMethods map[string]MethodLists

// MethodLists maintains ordered list of modules to run, segmented by sync and async.
type MethodLists struct {
	Sync  []*Methods
	Async []*Methods
}

// Priority represents the ranked priority in which a plugin method will be run for a given method.
type Priority int64

const (
	// PriorityHigh for plugin methods that should be run in the highest priority group.
	PriorityHigh Priority = iota
	// PriorityRegular for plugins methods that should be run with regular priority.
	PriorityRegular
	// PriorityAsync for plugin methods should be run asynchronously and won't be included in the response.
	PriorityAsync
)

// Plugin defines a plugin which contributes a portion of hint daemon functionality.
type Plugin interface {
	StartupInfo(ctx context.Context) (PluginInfo, error)
}

// Methods defines methods which can be optionally implemented by a module.
type Methods struct {
	// PluginNameKey identifies the name of the plugin that provides these method implementations.
	PluginNameKey string

	// Lifecycle related methods.
	Initialize  func(ctx context.Context, params *protocol.InitializeParams, result *protocol.InitializeResult) error
	Initialized func(ctx context.Context, params *protocol.InitializedParams) error
	Shutdown    func(ctx context.Context) error
	Exit        func(ctx context.Context) error

	// Document related methods.
	DidOpen   func(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error
	DidChange func(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error
	DidClose  func(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error
	DidSave   func(ctx context.Context, params *protocol.DidSaveTextDocumentParams) error

	// Hint session methods outside of the LSP protocol.
	HintsSetup  func(ctx context.Context, params *entity.RawHintOptions) error
	HintsShow   func(ctx context.Context) error
	HintsHide   func(ctx context.Context) error
	HintsToggle func(ctx context.Context) error

	// Connection related methods outside of the LSP protocol.
	EndSession func(ctx context.Context, uuid uuid.UUID) error
}

// PluginInfo provides both prioritization for each method, as well as access to call each method implemented by this plugin.
type PluginInfo struct {
	Priorities map[string]Priority
	Methods    *Methods
	NameKey    string
}

// Validate provides runtime validation that a Plugin implementation returns valid PluginInfo.
func (m *PluginInfo) Validate() error {
	// Required fields.
	if len(m.Priorities) == 0 {
		return fmt.Errorf(_errorMissingField, "Priorities")
	} else if m.Methods == nil {
		return fmt.Errorf(_errorMissingField, "Methods")
	} else if m.NameKey == "" {
		return fmt.Errorf(_errorMissingField, "NameKey")
	} else if m.Methods.PluginNameKey != m.NameKey {
		return fmt.Errorf(_errorMissingField, "Methods.PluginNameKey")
	}

	// Each configuration key must have a matching entry in Methods.
	for key := range m.Priorities {
		switch key {
		// Lifecycle related methods.
		case protocol.MethodInitialize:
			if m.Methods.Initialize == nil {
				return fmt.Errorf(_errorMissingMethod, key)
			}
		case protocol.MethodInitialized:
			if m.Methods.Initialized == nil {
				return fmt.Errorf(_errorMissingMethod, key)
			}
		case protocol.MethodShutdown:
			if m.Methods.Shutdown == nil {
				return fmt.Errorf(_errorMissingMethod, key)
			}
		case protocol.MethodExit:
			if m.Methods.Exit == nil {
				return fmt.Errorf(_errorMissingMethod, key)
			}
		// Document related methods.
		case protocol.MethodTextDocumentDidOpen:
			if m.Methods.DidOpen == nil {
				return fmt.Errorf(_errorMissingMethod, key)
			}
		case protocol.MethodTextDocumentDidChange:
			if m.Methods.DidChange == nil {
				return fmt.Errorf(_errorMissingMethod, key)
			}
		case protocol.MethodTextDocumentDidClose:
			if m.Methods.DidClose == nil {
				return fmt.Errorf(_errorMissingMethod, key)
			}
		case protocol.MethodTextDocumentDidSave:
			if m.Methods.DidSave == nil {
				return fmt.Errorf(_errorMissingMethod, key)
			}
		// Hint session methods.
		case hintdprotocol.MethodHintsSetup:
			if m.Methods.HintsSetup == nil {
				return fmt.Errorf(_errorMissingMethod, key)
			}
		case hintdprotocol.MethodHintsShow:
			if m.Methods.HintsShow == nil {
				return fmt.Errorf(_errorMissingMethod, key)
			}
		case hintdprotocol.MethodHintsHide:
			if m.Methods.HintsHide == nil {
				return fmt.Errorf(_errorMissingMethod, key)
			}
		case hintdprotocol.MethodHintsToggle:
			if m.Methods.HintsToggle == nil {
				return fmt.Errorf(_errorMissingMethod, key)
			}

		case MethodEndSession:
			if m.Methods.EndSession == nil {
				return fmt.Errorf(_errorMissingMethod, key)
			}

		default:
			return fmt.Errorf(_errorUnrecognizedMethod, key)
		}
	}
	return nil
}
