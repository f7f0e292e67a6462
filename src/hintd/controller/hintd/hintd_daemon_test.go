package hintddaemon

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/overlaykit/hintd/idl/mock/fxmock"
	"github.com/overlaykit/hintd/src/hintd/entity"
	hintplugin "github.com/overlaykit/hintd/src/hintd/entity/hint-plugin"
	"github.com/overlaykit/hintd/src/hintd/entity/hint-plugin/pluginmock"
	"github.com/overlaykit/hintd/src/hintd/factory"
	"github.com/overlaykit/hintd/src/hintd/gateway/editor-client/editorclientmock"
	"github.com/overlaykit/hintd/src/hintd/mapper"
	"github.com/overlaykit/hintd/src/hintd/repository/session/repositorymock"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type sampleConfig map[string]interface{}

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockShutdowner := fxmock.NewMockShutdowner(ctrl)

	s := &entity.Session{
		UUID: factory.UUID(),
	}
	ctx := context.WithValue(context.Background(), entity.SessionContextKey, s.UUID)

	sessionRepository := repositorymock.NewMockRepository(ctrl)
	sessionRepository.EXPECT().GetFromContext(gomock.Any()).Return(s, nil).AnyTimes()

	mockParams := Params{
		Shutdowner: mockShutdowner,
		Logger:     zap.NewNop().Sugar(),
		Sessions:   sessionRepository,
	}

	t.Run("config includes timeout", func(t *testing.T) {
		mockConfig, _ := config.NewStaticProvider(sampleConfig{
			_idleTimeoutMinutesKey: 5,
		})
		mockParams.Config = mockConfig

		assert.NotPanics(t, func() {
			mockShutdowner.EXPECT().Shutdown().Return(nil)
			c, _ := New(mockParams)
			c.RequestFullShutdown(ctx)
			c.Exit(ctx)

			// Small delay to allow shutdown goroutine to complete.
			time.Sleep(100 * time.Millisecond)
		})
	})

	t.Run("config missing timeout", func(t *testing.T) {
		mockConfig, _ := config.NewStaticProvider(sampleConfig{})
		mockParams.Config = mockConfig

		_, err := New(mockParams)
		assert.Error(t, err)
	})
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRegisterPlugins(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := &entity.Session{
		UUID: factory.UUID(),
	}
	ctx := context.WithValue(context.Background(), entity.SessionContextKey, s.UUID)

	sessionRepository := repositorymock.NewMockRepository(ctrl)
	sessionRepository.EXPECT().GetFromContext(gomock.Any()).Return(s, nil).AnyTimes()

	// Start with 3 valid plugins.
	availablePlugins := []hintplugin.Plugin{}
	nameKeys := map[string]bool{}
	for i := 0; i < 3; i++ {
		newPlugin := pluginmock.NewMockPlugin(ctrl)
		info := factory.PluginInfoValid(i)
		nameKeys[info.NameKey] = true
		newPlugin.EXPECT().StartupInfo(gomock.Any()).Return(info, nil).AnyTimes()
		availablePlugins = append(availablePlugins, newPlugin)
	}

	t.Run("valid plugins", func(t *testing.T) {
		c := controller{
			logger:        zap.NewNop().Sugar(),
			sessions:      sessionRepository,
			pluginMethods: map[uuid.UUID]hintplugin.RuntimePrioritizedMethods{},
			pluginConfig:  nameKeys,
			pluginsAll:    availablePlugins,
		}

		err := c.registerSessionPlugins(ctx)
		assert.NoError(t, err)

		for i := 0; i < 3; i++ {
			original, _ := availablePlugins[i].StartupInfo(ctx)
			assert.Equal(t, original.Methods, c.pluginMethods[s.UUID][protocol.MethodTextDocumentDidOpen].Sync[i])
		}
	})

	t.Run("replacement removes previous binding", func(t *testing.T) {
		c := controller{
			logger:        zap.NewNop().Sugar(),
			sessions:      sessionRepository,
			pluginMethods: map[uuid.UUID]hintplugin.RuntimePrioritizedMethods{},
			pluginConfig:  nameKeys,
			pluginsAll:    availablePlugins,
		}

		assert.NoError(t, c.registerSessionPlugins(ctx))
		assert.NoError(t, c.registerSessionPlugins(ctx))
		assert.Len(t, c.pluginMethods[s.UUID][protocol.MethodTextDocumentDidOpen].Sync, 3)
	})

	t.Run("invalid plugin", func(t *testing.T) {
		c := controller{
			logger:        zap.NewNop().Sugar(),
			sessions:      sessionRepository,
			pluginMethods: map[uuid.UUID]hintplugin.RuntimePrioritizedMethods{},
			pluginConfig:  nameKeys,
			pluginsAll:    availablePlugins,
		}

		newPlugin := pluginmock.NewMockPlugin(ctrl)
		info := factory.PluginInfoInvalid(10)
		nameKeys[info.NameKey] = true

		newPlugin.EXPECT().StartupInfo(gomock.Any()).Return(info, nil)
		availablePlugins[1] = newPlugin

		err := c.registerSessionPlugins(ctx)
		assert.Error(t, err)
	})

	t.Run("StartupInfo error", func(t *testing.T) {
		c := controller{
			logger:        zap.NewNop().Sugar(),
			sessions:      sessionRepository,
			pluginMethods: map[uuid.UUID]hintplugin.RuntimePrioritizedMethods{},
			pluginConfig:  nameKeys,
			pluginsAll:    availablePlugins,
		}

		newPlugin := pluginmock.NewMockPlugin(ctrl)
		newPlugin.EXPECT().StartupInfo(gomock.Any()).Return(hintplugin.PluginInfo{}, errors.New("startup info error"))
		availablePlugins[1] = newPlugin

		err := c.registerSessionPlugins(ctx)
		assert.Error(t, err)
	})
}

// Each editor connection registers, dispatches and ends its session on its
// own goroutine, so the method table must hold up under concurrent sessions.
func TestRegisterPluginsConcurrent(t *testing.T) {
	ctrl := gomock.NewController(t)

	sessionRepository := repositorymock.NewMockRepository(ctrl)
	sessionRepository.EXPECT().GetFromContext(gomock.Any()).DoAndReturn(func(ctx context.Context) (*entity.Session, error) {
		id, err := mapper.ContextToSessionUUID(ctx)
		if err != nil {
			return nil, err
		}
		return &entity.Session{UUID: id}, nil
	}).AnyTimes()
	sessionRepository.EXPECT().SessionCount(gomock.Any()).Return(1, nil).AnyTimes()
	sessionRepository.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	editorGateway := editorclientmock.NewMockGateway(ctrl)
	editorGateway.EXPECT().DeregisterClient(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	availablePlugins := []hintplugin.Plugin{}
	nameKeys := map[string]bool{}
	for i := 0; i < 3; i++ {
		newPlugin := pluginmock.NewMockPlugin(ctrl)
		info := factory.PluginInfoValid(i)
		nameKeys[info.NameKey] = true
		newPlugin.EXPECT().StartupInfo(gomock.Any()).Return(info, nil).AnyTimes()
		availablePlugins = append(availablePlugins, newPlugin)
	}

	c := controller{
		logger:             zap.NewNop().Sugar(),
		sessions:           sessionRepository,
		editorGateway:      editorGateway,
		idleTimer:          time.NewTimer(time.Hour),
		idleTimeoutMinutes: time.Hour,
		pluginMethods:      map[uuid.UUID]hintplugin.RuntimePrioritizedMethods{},
		pluginConfig:       nameKeys,
		pluginsAll:         availablePlugins,
	}

	callDidOpen := func(ctx context.Context, m *hintplugin.Methods) {
		m.DidOpen(ctx, &protocol.DidOpenTextDocumentParams{})
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		id := factory.UUID()
		ctx := context.WithValue(context.Background(), entity.SessionContextKey, id)
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.registerSessionPlugins(ctx))
			assert.NoError(t, c.executePluginMethods(ctx, protocol.MethodTextDocumentDidOpen, callDidOpen, callDidOpen))
			assert.NoError(t, c.EndSession(ctx, id))
		}()
	}
	wg.Wait()
	c.wg.Wait()

	assert.Empty(t, c.pluginMethods)
}

func TestExecutePluginMethods(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := &entity.Session{
		UUID: factory.UUID(),
	}
	ctx := context.WithValue(context.Background(), entity.SessionContextKey, s.UUID)

	sessionRepository := repositorymock.NewMockRepository(ctrl)
	sessionRepository.EXPECT().GetFromContext(gomock.Any()).Return(s, nil).AnyTimes()

	c := controller{
		logger:   zap.NewNop().Sugar(),
		sessions: sessionRepository,
	}

	var counter int32
	c.pluginMethods = map[uuid.UUID]hintplugin.RuntimePrioritizedMethods{s.UUID: hintplugin.RuntimePrioritizedMethods{}}
	c.pluginMethods[s.UUID][protocol.MethodExit] = hintplugin.MethodLists{
		Sync: []*hintplugin.Methods{
			{
				Exit: func(ctx context.Context) error {
					atomic.AddInt32(&counter, 1)
					return nil
				},
			},
			{
				Exit: func(ctx context.Context) error {
					atomic.AddInt32(&counter, 1)
					return errors.New("sample")
				},
			},
		},
		Async: []*hintplugin.Methods{
			{
				Exit: func(ctx context.Context) error {
					atomic.AddInt32(&counter, 1)
					return nil
				},
			},
			{
				Exit: func(ctx context.Context) error {
					atomic.AddInt32(&counter, 1)
					return errors.New("sample")
				},
			},
		},
	}

	sampleFunc := func(ctx context.Context, m *hintplugin.Methods) {
		m.Exit(ctx)
	}

	t.Run("valid call", func(t *testing.T) {
		counter = 0
		err := c.executePluginMethods(ctx, protocol.MethodExit, sampleFunc, sampleFunc)
		c.wg.Wait()
		assert.NoError(t, err)
		assert.Equal(t, 4, int(counter))
	})

	t.Run("missing handler", func(t *testing.T) {
		counter = 0
		err := c.executePluginMethods(ctx, protocol.MethodExit, nil, sampleFunc)
		c.wg.Wait()
		assert.Error(t, err)
		assert.Equal(t, 0, int(counter))
	})

	t.Run("method without registered plugins", func(t *testing.T) {
		counter = 0
		c.executePluginMethods(ctx, protocol.MethodTextDocumentDidClose, sampleFunc, sampleFunc)
		c.wg.Wait()
		assert.Equal(t, 0, int(counter))
	})

	t.Run("session without registered plugins", func(t *testing.T) {
		s := &entity.Session{
			UUID: factory.UUID(),
		}
		ctx := context.WithValue(context.Background(), entity.SessionContextKey, s.UUID)
		err := c.executePluginMethods(ctx, protocol.MethodTextDocumentDidClose, sampleFunc, sampleFunc)
		assert.NoError(t, err)
	})
}
