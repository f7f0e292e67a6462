// Package analysisclient maintains outbound connections to the language-analysis service.
package analysisclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	hintderrors "github.com/overlaykit/hintd/src/hintd/internal/errors"
	hintdprotocol "github.com/overlaykit/hintd/src/hintd/internal/protocol"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const _configKeyAddress = "analysis.address"

// Module provides an analysis service gateway.
var Module = fx.Provide(New)

// HintsCallback receives the outcome of an asynchronous hint request.
// Invoked at most once per request.
type HintsCallback func(result []hintdprotocol.InlayHint, err error)

// Gateway issues requests against the analysis service.
// Connections are established lazily, one per workspace root, and reused
// across all documents and sessions sharing that root.
type Gateway interface {
	// Connect ensures a live connection for the given workspace root.
	Connect(ctx context.Context, workspaceRoot string) error
	// Connected reports whether a live connection exists for the given workspace root.
	Connected(workspaceRoot string) bool
	// Disconnect closes and forgets the connection for the given workspace root.
	Disconnect(ctx context.Context, workspaceRoot string) error
	// InlayHints requests hints for a range and delivers the outcome to cb on a separate goroutine.
	// Returns NoConnectionError if no live connection exists for the workspace root.
	InlayHints(ctx context.Context, workspaceRoot string, params *hintdprotocol.InlayHintParams, cb HintsCallback) error
}

// Params define values to be used by the analysis service gateway.
type Params struct {
	fx.In

	Config    config.Provider
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
}

type gateway struct {
	address string
	logger  *zap.SugaredLogger

	mu    sync.Mutex
	conns map[string]jsonrpc2.Conn

	// dial is swapped in tests.
	dial func(ctx context.Context, address string) (jsonrpc2.Conn, error)
}

// New creates a Gateway for the configured analysis service address.
func New(p Params) (Gateway, error) {
	if p.Lifecycle == nil || p.Config == nil {
		return nil, errors.New("required parameters are missing")
	}

	g := &gateway{
		logger: p.Logger,
		conns:  make(map[string]jsonrpc2.Conn),
		dial:   dialTCP,
	}

	if err := p.Config.Get(_configKeyAddress).Populate(&g.address); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyAddress, err)
	}
	if g.address == "" {
		return nil, fmt.Errorf("missing field %q in config", _configKeyAddress)
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: g.closeAll,
	})

	return g, nil
}

func dialTCP(ctx context.Context, address string) (jsonrpc2.Conn, error) {
	var dialer net.Dialer
	nc, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, err
	}
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(nc))
	conn.Go(ctx, jsonrpc2.MethodNotFoundHandler)
	return conn, nil
}

func (g *gateway) Connect(ctx context.Context, workspaceRoot string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if conn, ok := g.conns[workspaceRoot]; ok {
		select {
		case <-conn.Done():
			// Stale connection, replace below.
			delete(g.conns, workspaceRoot)
		default:
			return nil
		}
	}

	conn, err := g.dial(ctx, g.address)
	if err != nil {
		return fmt.Errorf("connecting to analysis service: %w", err)
	}

	g.conns[workspaceRoot] = conn
	g.logger.Infow("analysis service connected", "workspaceRoot", workspaceRoot, "address", g.address)
	return nil
}

func (g *gateway) Connected(workspaceRoot string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	conn, ok := g.conns[workspaceRoot]
	if !ok {
		return false
	}
	select {
	case <-conn.Done():
		return false
	default:
		return true
	}
}

func (g *gateway) Disconnect(ctx context.Context, workspaceRoot string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	conn, ok := g.conns[workspaceRoot]
	if !ok {
		return nil
	}
	delete(g.conns, workspaceRoot)
	return conn.Close()
}

func (g *gateway) InlayHints(ctx context.Context, workspaceRoot string, params *hintdprotocol.InlayHintParams, cb HintsCallback) error {
	g.mu.Lock()
	conn, ok := g.conns[workspaceRoot]
	g.mu.Unlock()

	if !ok {
		return hintderrors.NoConnectionError
	}

	go func() {
		var result []hintdprotocol.InlayHint
		_, err := conn.Call(ctx, hintdprotocol.MethodTextDocumentInlayHint, params, &result)
		cb(result, err)
	}()

	return nil
}

func (g *gateway) closeAll(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	var errs error
	for root, conn := range g.conns {
		if err := conn.Close(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("closing analysis connection for %q: %w", root, err))
		}
		delete(g.conns, root)
	}
	return errs
}
