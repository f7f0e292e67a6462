package mapper

import (
	"context"
	"testing"

	"github.com/overlaykit/hintd/src/hintd/entity"
	"github.com/overlaykit/hintd/src/hintd/factory"
	"github.com/stretchr/testify/assert"
)

func TestSessionRoundTrip(t *testing.T) {
	session := &entity.Session{
		UUID:          factory.UUID(),
		WorkspaceRoot: "/sample/root",
		HintsEnabled:  true,
		HintConfig: &entity.HintConfig{
			Triggers:         []string{"textDocument/didSave"},
			EnabledAtStartup: true,
			RootCommand:      []string{"git", "rev-parse", "--show-toplevel"},
		},
	}

	result, err := ModelToSession(SessionToModel(session))
	assert.NoError(t, err)
	assert.Equal(t, session, result)
}

func TestSessionToModelWithoutHintConfig(t *testing.T) {
	session := &entity.Session{
		UUID: factory.UUID(),
	}

	m := SessionToModel(session)
	assert.Empty(t, m.HintTriggers)

	result, err := ModelToSession(m)
	assert.NoError(t, err)
	assert.Nil(t, result.HintConfig)
}

func TestUUIDToSession(t *testing.T) {
	id := factory.UUID()
	session := UUIDToSession(id, nil)
	assert.Equal(t, id, session.UUID)
	assert.False(t, session.HintsEnabled)
}

func TestContextToSessionUUID(t *testing.T) {
	t.Run("uuid present", func(t *testing.T) {
		id := factory.UUID()
		ctx := context.WithValue(context.Background(), entity.SessionContextKey, id)

		result, err := ContextToSessionUUID(ctx)
		assert.NoError(t, err)
		assert.Equal(t, id, result)
	})

	t.Run("uuid missing", func(t *testing.T) {
		_, err := ContextToSessionUUID(context.Background())
		assert.Error(t, err)
	})
}
