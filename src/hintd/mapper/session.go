// Package mapper maps between entities, models and wire types for the hintd service.
package mapper

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/overlaykit/hintd/src/hintd/entity"
	"github.com/overlaykit/hintd/src/hintd/internal/errors"
	"github.com/overlaykit/hintd/src/hintd/model"
	"go.lsp.dev/jsonrpc2"
)

// SessionToModel maps a Session entity to its model equivalent.
func SessionToModel(f *entity.Session) *model.Session {
	m := &model.Session{
		UUID:             f.UUID,
		InitializeParams: f.InitializeParams,
		Conn:             f.Conn,
		WorkspaceRoot:    f.WorkspaceRoot,
		HintsEnabled:     f.HintsEnabled,
	}
	if f.HintConfig != nil {
		m.HintTriggers = append([]string(nil), f.HintConfig.Triggers...)
		m.HintRootCommand = append([]string(nil), f.HintConfig.RootCommand...)
		m.EnabledAtStartup = f.HintConfig.EnabledAtStartup
	}
	return m
}

// ModelToSession maps a model Session to its entity equivalent.
func ModelToSession(f *model.Session) (*entity.Session, error) {
	s := &entity.Session{
		UUID:             f.UUID,
		InitializeParams: f.InitializeParams,
		Conn:             f.Conn,
		WorkspaceRoot:    f.WorkspaceRoot,
		HintsEnabled:     f.HintsEnabled,
	}
	if len(f.HintTriggers) > 0 || len(f.HintRootCommand) > 0 {
		s.HintConfig = &entity.HintConfig{
			Triggers:         append([]string(nil), f.HintTriggers...),
			RootCommand:      append([]string(nil), f.HintRootCommand...),
			EnabledAtStartup: f.EnabledAtStartup,
		}
	}
	return s, nil
}

// UUIDToSession initializes a new Session entity with the assigned uuid and connection.
func UUIDToSession(u uuid.UUID, c *jsonrpc2.Conn) *entity.Session {
	return &entity.Session{
		UUID: u,
		Conn: c,
	}
}

// ContextToSessionUUID extracts the UUID from a context
func ContextToSessionUUID(c context.Context) (uuid.UUID, error) {
	s, ok := c.Value(entity.SessionContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, &errors.NoSessionFoundError{}
	}
	return s, nil
}
