package jsonrpcfx

import (
	"context"
	"net"
	"strings"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

type fakeRouter struct {
	uuid uuid.UUID
}

func (r *fakeRouter) HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	return reply(ctx, nil, nil)
}

func (r *fakeRouter) UUID() uuid.UUID { return r.uuid }

type fakeConnectionManager struct {
	router  Router
	removed []uuid.UUID
}

func (m *fakeConnectionManager) NewConnection(ctx context.Context, conn *jsonrpc2.Conn) (Router, error) {
	return m.router, nil
}

func (m *fakeConnectionManager) RemoveConnection(ctx context.Context, id uuid.UUID) {
	m.removed = append(m.removed, id)
}

func newProvider(t *testing.T, yaml string) config.Provider {
	provider, err := config.NewYAML(config.Source(strings.NewReader(yaml)))
	require.NoError(t, err)
	return provider
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		params  func(t *testing.T) Params
		wantErr bool
	}{
		{
			name:    "missing required params",
			params:  func(t *testing.T) Params { return Params{} },
			wantErr: true,
		},
		{
			name: "all required params are present",
			params: func(t *testing.T) Params {
				return Params{
					Lifecycle: fxtest.NewLifecycle(t),
					Config:    newProvider(t, "jsonrpc:\n  address: 127.0.0.1:0"),
					Logger:    zap.NewNop().Sugar(),
				}
			},
		},
		{
			name: "missing address in config",
			params: func(t *testing.T) Params {
				return Params{
					Lifecycle: fxtest.NewLifecycle(t),
					Config:    newProvider(t, "unrelated: value"),
					Logger:    zap.NewNop().Sugar(),
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.params(t))

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegisterConnectionManager(t *testing.T) {
	m := module{}
	mgr := &fakeConnectionManager{}

	// first call should return no error
	assert.NoError(t, m.RegisterConnectionManager(mgr))

	// duplicate call should return error
	assert.Error(t, m.RegisterConnectionManager(mgr))
}

func TestServeStreamWithoutConnectionManager(t *testing.T) {
	m := module{logger: zap.NewNop().Sugar()}

	client, server := net.Pipe()
	defer client.Close()
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(server))
	defer conn.Close()

	assert.Error(t, m.ServeStream(context.Background(), conn))
}

func TestServeStream(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	mgr := &fakeConnectionManager{router: &fakeRouter{uuid: id}}

	m := module{logger: zap.NewNop().Sugar()}
	require.NoError(t, m.RegisterConnectionManager(mgr))

	client, server := net.Pipe()
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(server))

	done := make(chan error, 1)
	go func() {
		done <- m.ServeStream(context.Background(), conn)
	}()

	// Closing the peer ends the connection and triggers cleanup.
	require.NoError(t, client.Close())
	<-done

	assert.Equal(t, []uuid.UUID{id}, mgr.removed)
}

func TestSetupWithoutAddress(t *testing.T) {
	m := module{}
	assert.Error(t, m.setup())
}
